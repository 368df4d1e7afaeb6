package types

// Form structs are decoded with go-playground/form and validated with
// go-playground/validator before being converted into records.

type DamageReportForm struct {
	FullName       string   `form:"full_name" validate:"required,notblank,max=120"`
	PhoneNumber    string   `form:"phone_number" validate:"required,notblank,max=32"`
	District       string   `form:"district" validate:"required,notblank,max=80"`
	DSDivision     string   `form:"ds_division" validate:"required,notblank,max=80"`
	GNDivision     string   `form:"gn_division" validate:"required,notblank,max=80"`
	DamageType     string   `form:"damage_type" validate:"required,oneof=minor partial severe total_loss"`
	FamilyMembers  int      `form:"family_members" validate:"required,min=1,max=100"`
	EssentialNeeds []string `form:"essential_needs" validate:"nonempty,dive,essential_need"`
	Latitude       string   `form:"latitude" validate:"omitempty,latitude"`
	Longitude      string   `form:"longitude" validate:"omitempty,longitude"`
	Consent        bool     `form:"consent" validate:"required"`
}

type DonationOfferForm struct {
	Name        string `form:"name" validate:"required,notblank,max=120"`
	Phone       string `form:"phone" validate:"omitempty,max=32"`
	Email       string `form:"email" validate:"omitempty,email"`
	SupportType string `form:"support_type" validate:"required,oneof=materials money labour"`
	Description string `form:"description" validate:"omitempty,max=2000"`
}

type VolunteerOfferForm struct {
	FullName          string   `form:"full_name" validate:"required,notblank,max=120"`
	PhoneNumber       string   `form:"phone_number" validate:"required,notblank,max=32"`
	Skills            []string `form:"skills" validate:"nonempty,dive,oneof=carpentry electrical plumbing masonry general"`
	AvailabilityStart string   `form:"availability_start" validate:"omitempty,datetime=2006-01-02"`
	AvailabilityEnd   string   `form:"availability_end" validate:"omitempty,datetime=2006-01-02"`
}

type RegisterForm struct {
	Email           string `form:"email" validate:"required,email,max=254"`
	Password        string `form:"password" validate:"required,min=8,max=256"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=Password"`
}

type ConfirmRegisterForm struct {
	Email string `form:"email" validate:"required,email"`
	Code  string `form:"code" validate:"required,numeric,len=6"`
}
