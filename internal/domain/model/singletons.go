package model

import (
	"encoding/json"
	"time"
)

// Contact — контактная информация компании (singleton).
type Contact struct {
	ID           int64  `json:"id,omitempty"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	FacebookURL  string `json:"facebookUrl"`
	TwitterURL   string `json:"twitterUrl"`
	InstagramURL string `json:"instagramUrl"`
	LinkedinURL  string `json:"linkedinUrl"`
}

// AboutUs — раздел «О компании» в формате API.
// Команда и вехи хранятся как JSON-строки.
type AboutUs struct {
	ID                 int64  `json:"id,omitempty"`
	CompanyName        string `json:"companyName"`
	CompanyDescription string `json:"companyDescription"`
	OwnerName          string `json:"ownerName"`
	OwnerTitle         string `json:"ownerTitle"`
	OwnerDescription   string `json:"ownerDescription"`
	OwnerImageURL      string `json:"ownerImageUrl"`
	Introduction       string `json:"introduction"`
	ManagementTeamJSON string `json:"managementTeamJson"`
	MilestonesJSON     string `json:"milestonesJson"`
}

// TeamMember — член команды управления.
type TeamMember struct {
	Name         string `json:"name"`
	Designation  string `json:"designation"`
	ProfileImage string `json:"profileImage"`
}

// Milestone — веха истории компании.
type Milestone struct {
	Year        int    `json:"year"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// NewMilestone возвращает пустую веху текущего года.
func NewMilestone() Milestone {
	return Milestone{Year: time.Now().Year()}
}

// AboutForm — черновик раздела «О компании» с разобранными списками.
type AboutForm struct {
	CompanyName        string       `json:"companyName"`
	CompanyDescription string       `json:"companyDescription"`
	OwnerName          string       `json:"ownerName"`
	OwnerTitle         string       `json:"ownerTitle"`
	OwnerDescription   string       `json:"ownerDescription"`
	OwnerImageURL      string       `json:"ownerImageUrl"`
	Introduction       string       `json:"introduction"`
	ManagementTeam     []TeamMember `json:"managementTeam"`
	Milestones         []Milestone  `json:"milestones"`
}

// AboutFormFrom разбирает JSON-строки команды и вех.
// Неразбираемое значение даёт пустой список.
func AboutFormFrom(a AboutUs) AboutForm {
	f := AboutForm{
		CompanyName:        a.CompanyName,
		CompanyDescription: a.CompanyDescription,
		OwnerName:          a.OwnerName,
		OwnerTitle:         a.OwnerTitle,
		OwnerDescription:   a.OwnerDescription,
		OwnerImageURL:      a.OwnerImageURL,
		Introduction:       a.Introduction,
		ManagementTeam:     []TeamMember{},
		Milestones:         []Milestone{},
	}
	if a.ManagementTeamJSON != "" {
		var team []TeamMember
		if err := json.Unmarshal([]byte(a.ManagementTeamJSON), &team); err == nil && team != nil {
			f.ManagementTeam = team
		}
	}
	if a.MilestonesJSON != "" {
		var ms []Milestone
		if err := json.Unmarshal([]byte(a.MilestonesJSON), &ms); err == nil && ms != nil {
			f.Milestones = ms
		}
	}
	return f
}

// ToAboutUs кодирует списки обратно в JSON-строки.
func (f AboutForm) ToAboutUs(id int64) (AboutUs, error) {
	team := f.ManagementTeam
	if team == nil {
		team = []TeamMember{}
	}
	ms := f.Milestones
	if ms == nil {
		ms = []Milestone{}
	}
	teamJSON, err := json.Marshal(team)
	if err != nil {
		return AboutUs{}, err
	}
	msJSON, err := json.Marshal(ms)
	if err != nil {
		return AboutUs{}, err
	}
	return AboutUs{
		ID:                 id,
		CompanyName:        f.CompanyName,
		CompanyDescription: f.CompanyDescription,
		OwnerName:          f.OwnerName,
		OwnerTitle:         f.OwnerTitle,
		OwnerDescription:   f.OwnerDescription,
		OwnerImageURL:      f.OwnerImageURL,
		Introduction:       f.Introduction,
		ManagementTeamJSON: string(teamJSON),
		MilestonesJSON:     string(msJSON),
	}, nil
}

// Partner — логотип со ссылкой (бренды, клиенты, платформы, партнёры).
type Partner struct {
	ImageURL string `json:"imageUrl"`
	Link     string `json:"link"`
	Name     string `json:"name"`
}

// Recommendation — отзыв на главной странице.
type Recommendation struct {
	ImageURL string `json:"imageUrl"`
	Link     string `json:"link"`
	Name     string `json:"name"`
	Message  string `json:"message"`
	Rating   int    `json:"rating"`
}

// NewRecommendation возвращает пустой отзыв с оценкой по умолчанию.
func NewRecommendation() Recommendation {
	return Recommendation{Rating: 5}
}

// HomeContent — содержимое главной страницы (singleton).
type HomeContent struct {
	ID              int64            `json:"id,omitempty"`
	WelcomeMessage  string           `json:"welcomeMessage"`
	ShortParagraph  string           `json:"shortParagraph"`
	OurBrands       []Partner        `json:"ourBrands"`
	OurCustomers    []Partner        `json:"ourCustomers"`
	OurPlatforms    []Partner        `json:"ourPlatforms"`
	Recommendations []Recommendation `json:"recommendations"`
}

// EnsureLists заменяет nil-списки пустыми.
func (h *HomeContent) EnsureLists() {
	if h.OurBrands == nil {
		h.OurBrands = []Partner{}
	}
	if h.OurCustomers == nil {
		h.OurCustomers = []Partner{}
	}
	if h.OurPlatforms == nil {
		h.OurPlatforms = []Partner{}
	}
	if h.Recommendations == nil {
		h.Recommendations = []Recommendation{}
	}
}
