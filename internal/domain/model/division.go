package model

// Division — подразделение компании с вложенной структурой.
type Division struct {
	DivisionsID   string          `json:"divisionsId"`
	DivisionsName string          `json:"divisionsName"`
	Slug          string          `json:"slug"`
	Status        string          `json:"status"`
	DisplayOrder  int             `json:"displayOrder"`
	BasicInfo     DivisionBasic   `json:"basicInfo"`
	SubDivisions  []SubDivision   `json:"subDivisions"`
	ContactUs     DivisionContact `json:"contactUs"`
	CreatedAt     string          `json:"createdAt,omitempty"`
	UpdatedAt     string          `json:"updatedAt,omitempty"`
}

// Статусы подразделения.
const (
	DivisionActive   = "active"
	DivisionInactive = "inactive"
)

// DivisionBasic — основная информация подразделения.
type DivisionBasic struct {
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
	BannerImage      string `json:"bannerImage"`
}

// SubDivision — направление внутри подразделения.
type SubDivision struct {
	SubDivisionsName   string              `json:"subDivisionsName"`
	SimpleDivisions    string              `json:"simpleDivisions"`
	KeyFeatures        []string            `json:"keyFeatures"`
	GlobalPartners     []Partner           `json:"globalPartners"`
	Brands             []Partner           `json:"brands"`
	Sections           []Section           `json:"sections"`
	ResponsiblePersons []ResponsiblePerson `json:"responsiblePersons"`
}

// NewSubDivision возвращает пустое направление с инициализированными списками.
func NewSubDivision() SubDivision {
	return SubDivision{
		KeyFeatures:        []string{},
		GlobalPartners:     []Partner{},
		Brands:             []Partner{},
		Sections:           []Section{},
		ResponsiblePersons: []ResponsiblePerson{},
	}
}

// Section — текстовый блок направления.
type Section struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ResponsiblePerson — ответственное лицо направления.
type ResponsiblePerson struct {
	ProfileImage   string `json:"profileImage"`
	Name           string `json:"name"`
	Designation    string `json:"designation"`
	ContactNumber  string `json:"contactNumber"`
	Email          string `json:"email"`
	WhatsAppNumber string `json:"whatsAppNumber"`
	VCard          string `json:"vCard"`
}

// DivisionContact — контакты подразделения.
type DivisionContact struct {
	Location Location        `json:"location"`
	Contacts []ContactPerson `json:"contacts"`
}

// Location — координаты офиса (строки, как их отдаёт API).
type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// ContactPerson — контакт в разделе «Связаться с нами».
type ContactPerson struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Number      string `json:"number"`
}

// NewDivision возвращает пустое активное подразделение.
func NewDivision() Division {
	return Division{
		Status:       DivisionActive,
		SubDivisions: []SubDivision{},
		ContactUs:    DivisionContact{Contacts: []ContactPerson{}},
	}
}

// EnsureLists заменяет nil-списки пустыми на всех уровнях вложенности.
func (d *Division) EnsureLists() {
	if d.SubDivisions == nil {
		d.SubDivisions = []SubDivision{}
	}
	for i := range d.SubDivisions {
		sd := &d.SubDivisions[i]
		if sd.KeyFeatures == nil {
			sd.KeyFeatures = []string{}
		}
		if sd.GlobalPartners == nil {
			sd.GlobalPartners = []Partner{}
		}
		if sd.Brands == nil {
			sd.Brands = []Partner{}
		}
		if sd.Sections == nil {
			sd.Sections = []Section{}
		}
		if sd.ResponsiblePersons == nil {
			sd.ResponsiblePersons = []ResponsiblePerson{}
		}
	}
	if d.ContactUs.Contacts == nil {
		d.ContactUs.Contacts = []ContactPerson{}
	}
}
