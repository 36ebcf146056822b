package model

import "time"

// ==================== 枚举定义 ====================

// Zustand 商品成色 (德国二手平台惯用分级)
type Zustand string

const (
	ZustandGut               Zustand = "gut"
	ZustandZufriedenstellend Zustand = "zufriedenstellend"
	ZustandNeuMitEtikett     Zustand = "neu_mit_etikett"
	ZustandNeuOhneEtikett    Zustand = "neu_ohne_etikett"
	ZustandSehrGut           Zustand = "sehr_gut"
)

// ZustandLabels 前端展示文案
var ZustandLabels = map[Zustand]string{
	ZustandNeuMitEtikett:     "Neu mit Etikett",
	ZustandNeuOhneEtikett:    "Neu ohne Etikett",
	ZustandSehrGut:           "Sehr gut",
	ZustandGut:               "Gut",
	ZustandZufriedenstellend: "Zufriedenstellend",
}

// Valid 是否为合法成色值
func (z Zustand) Valid() bool {
	_, ok := ZustandLabels[z]
	return ok
}

// IsNeu 是否算作"新品" (带标签或不带标签的全新)
func (z Zustand) IsNeu() bool {
	return z == ZustandNeuMitEtikett || z == ZustandNeuOhneEtikett
}

// Kategorie 商品分类
type Kategorie string

const (
	KategorieDamenkleidung  Kategorie = "damenkleidung"
	KategorieHerrenkleidung Kategorie = "herrenkleidung"
	KategorieKinderkleidung Kategorie = "kinderkleidung"
	KategorieSchuhe         Kategorie = "schuhe"
	KategorieAccessoires    Kategorie = "accessoires"
	KategorieTaschen        Kategorie = "taschen"
	KategorieSchmuck        Kategorie = "schmuck"
	KategorieSonstiges      Kategorie = "sonstiges"
)

// KategorieAlle 分类筛选的通配值, 不是合法的字段值
const KategorieAlle = "alle"

// KategorieLabels 前端展示文案
var KategorieLabels = map[Kategorie]string{
	KategorieDamenkleidung:  "Damenkleidung",
	KategorieHerrenkleidung: "Herrenkleidung",
	KategorieKinderkleidung: "Kinderkleidung",
	KategorieSchuhe:         "Schuhe",
	KategorieAccessoires:    "Accessoires",
	KategorieTaschen:        "Taschen",
	KategorieSchmuck:        "Schmuck",
	KategorieSonstiges:      "Sonstiges",
}

// Valid 是否为合法分类值
func (k Kategorie) Valid() bool {
	_, ok := KategorieLabels[k]
	return ok
}

// ==================== 字段集 ====================

// Felder 一条 Inserat 的全部字段, 每个字段独立可空
// 字段名拼写与远端 records 后端的 schema 一一对应, 不可改动
// nil 表示"未填", 空字符串在合并语义里同样视为"未填"
type Felder struct {
	Artikelname  *string    `json:"artikelname,omitempty"`
	Beschreibung *string    `json:"beschreibung,omitempty"`
	Preis        *float64   `json:"preis,omitempty"` // 单位 EUR, 0 也算有效值
	Zustand      *Zustand   `json:"zustand,omitempty"`
	Kategorie    *Kategorie `json:"kategorie,omitempty"`
	Groesse      *string    `json:"groesse,omitempty"`
	Marke        *string    `json:"marke,omitempty"`
	Farbe        *string    `json:"farbe,omitempty"`
	Foto1        *string    `json:"foto_1,omitempty"`
	Foto2        *string    `json:"foto_2,omitempty"`
	Foto3        *string    `json:"foto_3,omitempty"`
	Foto4        *string    `json:"foto_4,omitempty"`
	Vorname      *string    `json:"vorname,omitempty"`
	Nachname     *string    `json:"nachname,omitempty"`
	Email        *string    `json:"email,omitempty"`
	Telefon      *string    `json:"telefon,omitempty"`
	Ort          *string    `json:"ort,omitempty"`
}

// PrimaryFoto 列表卡片展示用的主图: foto_1..foto_4 中第一个非空的
func (f *Felder) PrimaryFoto() string {
	for _, foto := range []*string{f.Foto1, f.Foto2, f.Foto3, f.Foto4} {
		if foto != nil && *foto != "" {
			return *foto
		}
	}
	return ""
}

// PresentFieldNames 返回已填写字段的字段名列表 (用于扫描日志)
func (f *Felder) PresentFieldNames() []string {
	names := make([]string, 0, 17)
	add := func(name string, present bool) {
		if present {
			names = append(names, name)
		}
	}
	add("artikelname", f.Artikelname != nil)
	add("beschreibung", f.Beschreibung != nil)
	add("preis", f.Preis != nil)
	add("zustand", f.Zustand != nil)
	add("kategorie", f.Kategorie != nil)
	add("groesse", f.Groesse != nil)
	add("marke", f.Marke != nil)
	add("farbe", f.Farbe != nil)
	add("foto_1", f.Foto1 != nil)
	add("foto_2", f.Foto2 != nil)
	add("foto_3", f.Foto3 != nil)
	add("foto_4", f.Foto4 != nil)
	add("vorname", f.Vorname != nil)
	add("nachname", f.Nachname != nil)
	add("email", f.Email != nil)
	add("telefon", f.Telefon != nil)
	add("ort", f.Ort != nil)
	return names
}

// ==================== 记录 ====================

// ArtikelEinstellen 一条已持久化的 Inserat 记录
// record_id 由远端 records 后端在创建时分配, 之后不可变
// updatedat 在第一次修改前为 null
type ArtikelEinstellen struct {
	RecordID  string     `json:"record_id"`
	CreatedAt time.Time  `json:"createdat"`
	UpdatedAt *time.Time `json:"updatedat"`
	Fields    Felder     `json:"fields"`
}
