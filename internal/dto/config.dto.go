package dto

import (
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type PricePackageDTO struct {
	Name        string `json:"name"`
	Hours       int    `json:"hours"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
}

// PublicConfigDTO is the branding, schedule and pricing a client needs to book.
type PublicConfigDTO struct {
	BusinessName   string `json:"businessName"`
	Logo           string `json:"logo"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Instagram      string `json:"instagram"`
	Facebook       string `json:"facebook"`
	Website        string `json:"website"`

	OperatingHours     models.OperatingHours `json:"operatingHours"`
	MinSessionDuration int                   `json:"minSessionDuration"`
	MaxSessionDuration int                   `json:"maxSessionDuration"`
	BufferTime         int                   `json:"bufferTime"`

	HourlyRate string            `json:"hourlyRate"`
	Currency   string            `json:"currency"`
	Packages   []PricePackageDTO `json:"packages"`

	UseTimeBlocks bool               `json:"useTimeBlocks"`
	TimeBlocks    []models.TimeBlock `json:"timeBlocks"`

	RequireDeposit bool   `json:"requireDeposit"`
	DepositType    string `json:"depositType"`
	DepositAmount  string `json:"depositAmount"`

	TermsAndConditions string `json:"termsAndConditions"`
	CancellationPolicy string `json:"cancellationPolicy"`

	AzulEnabled    bool `json:"azulEnabled"`
	SetupCompleted bool `json:"setupCompleted"`
}

type ConfigDTO struct {
	PublicConfigDTO

	SendConfirmationEmail bool `json:"sendConfirmationEmail"`
	SendReminderEmail     bool `json:"sendReminderEmail"`
	ReminderHoursBefore   int  `json:"reminderHoursBefore"`

	AzulMerchantID string `json:"azulMerchantId"`
	AzulMode       string `json:"azulMode"`
	HasAzulAuthKey bool   `json:"hasAzulAuthKey"`
}

func NewPublicConfigDTO(c *models.BusinessConfig) PublicConfigDTO {
	out := PublicConfigDTO{
		BusinessName:       c.BusinessName,
		Logo:               c.Logo,
		PrimaryColor:       c.PrimaryColor,
		SecondaryColor:     c.SecondaryColor,
		Email:              c.Email,
		Phone:              c.Phone,
		Address:            c.Address,
		Instagram:          c.Instagram,
		Facebook:           c.Facebook,
		Website:            c.Website,
		OperatingHours:     c.OperatingHours.Data(),
		MinSessionDuration: c.MinSessionDuration,
		MaxSessionDuration: c.MaxSessionDuration,
		BufferTime:         c.BufferTime,
		HourlyRate:         Money(c.HourlyRate),
		Currency:           c.Currency,
		Packages:           []PricePackageDTO{},
		UseTimeBlocks:      c.UseTimeBlocks,
		TimeBlocks:         c.TimeBlocks.Data(),
		RequireDeposit:     c.RequireDeposit,
		DepositType:        c.DepositType,
		DepositAmount:      Money(c.DepositAmount),
		TermsAndConditions: c.TermsAndConditions,
		CancellationPolicy: c.CancellationPolicy,
		AzulEnabled:        c.AzulEnabled,
		SetupCompleted:     c.SetupCompleted,
	}
	if out.TimeBlocks == nil {
		out.TimeBlocks = []models.TimeBlock{}
	}
	for _, p := range c.Packages.Data() {
		out.Packages = append(out.Packages, PricePackageDTO{
			Name:        p.Name,
			Hours:       p.Hours,
			Price:       Money(p.Price),
			Description: p.Description,
		})
	}
	return out
}

func NewConfigDTO(c *models.BusinessConfig) ConfigDTO {
	return ConfigDTO{
		PublicConfigDTO:       NewPublicConfigDTO(c),
		SendConfirmationEmail: c.SendConfirmationEmail,
		SendReminderEmail:     c.SendReminderEmail,
		ReminderHoursBefore:   c.ReminderHoursBefore,
		AzulMerchantID:        c.AzulMerchantID,
		AzulMode:              c.AzulMode,
		HasAzulAuthKey:        c.AzulAuthKey != "",
	}
}
