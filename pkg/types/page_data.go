package types

type NavbarData struct {
	IsAuthenticated bool
	IsAdmin         bool
	UserID          string
	UserEmail       string
	Lang            string
	Path            string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Lang   string
	Notice string
	Error  string
	Navbar NavbarData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
	d.Lang = data.Lang
}

// Option is one choice of a select, radio group or checkbox group.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

type HomePageData struct {
	BasePageData
	Counts  RecordCounts
	Reports []*DamageReport
	Donors  []*DonationOffer
}

type FloodMapPageData struct {
	BasePageData
	EmbedURL string
}

type DamageReportPageData struct {
	BasePageData
	Form        DamageReportForm
	FieldErrors map[string]string
	Districts   []Option
	DSDivisions []string
	GNDivisions []string
	DamageTypes []Option
	Needs       []Option
}

type DonationOfferPageData struct {
	BasePageData
	Form         DonationOfferForm
	FieldErrors  map[string]string
	SupportTypes []Option
}

type VolunteerOfferPageData struct {
	BasePageData
	Form        VolunteerOfferForm
	FieldErrors map[string]string
	Skills      []Option
}

type LoginPageData struct {
	BasePageData
	Message string
	Email   string
}

type RegisterPageData struct {
	BasePageData
	Email       string
	FieldErrors map[string]string
}

type ConfirmRegisterPageData struct {
	BasePageData
	Email       string
	Message     string
	FieldErrors map[string]string
}

type AdminTab struct {
	Label  string
	URL    string
	Active bool
}

type AdminHeader struct {
	Label   string
	SortURL string
	Active  bool
	Desc    bool
}

type AdminFilter struct {
	Name    string
	Label   string
	Options []Option
}

type AdminRow struct {
	ID         string
	Cells      []string
	Verifiable bool
	Verified   bool
	Selected   bool
	MapURL     string
	DetailURL  string
}

type AdminNotice struct {
	Level string
	Text  string
}

type AdminSummary struct {
	Visible      int
	Verified     int
	Pending      int
	Families     int
	Mapped       int
	Selected     int
	ShowFamilies bool
	ShowMapped   bool
}

type AdminTablePageData struct {
	BasePageData
	Tabs        []AdminTab
	BasePath    string
	StateQuery  string
	Search      string
	SortColumn  string
	SortDir     string
	Headers     []AdminHeader
	Filters     []AdminFilter
	Rows        []AdminRow
	Notices     []AdminNotice
	Summary     AdminSummary
	CanVerify   bool
	AllSelected bool
	LoadFailed  bool
	Page        int
	PageCount   int
	Total       int
	PrevURL     string
	NextURL     string
	ExportURL   string
	LiveURL     string
	RowsURL     string
}

type AdminField struct {
	Label string
	Value string
}

type AdminDetailPageData struct {
	BasePageData
	ID         string
	BasePath   string
	BackURL    string
	Fields     []AdminField
	MapURL     string
	PhotoURL   string
	Verifiable bool
	Verified   bool
}
