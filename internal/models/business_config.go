package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BusinessConfigID is the fixed primary key of the singleton configuration row.
var BusinessConfigID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type DayHours struct {
	Enabled bool   `json:"enabled"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

// OperatingHours is keyed by lowercase english weekday name ("monday" ... "sunday").
type OperatingHours map[string]DayHours

type TimeBlock struct {
	Time  string `json:"time"`
	Label string `json:"label,omitempty"`
}

type PricePackage struct {
	Name        string          `json:"name"`
	Hours       int             `json:"hours"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
}

type BusinessConfig struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BusinessName   string `gorm:"size:120;not null" json:"businessName"`
	Logo           string `gorm:"size:500" json:"logo"`
	PrimaryColor   string `gorm:"size:20" json:"primaryColor"`
	SecondaryColor string `gorm:"size:20" json:"secondaryColor"`
	Email          string `gorm:"size:120" json:"email"`
	Phone          string `gorm:"size:30" json:"phone"`
	Address        string `gorm:"size:255" json:"address"`
	Instagram      string `gorm:"size:120" json:"instagram"`
	Facebook       string `gorm:"size:120" json:"facebook"`
	Website        string `gorm:"size:255" json:"website"`

	OperatingHours     datatypes.JSONType[OperatingHours] `json:"operatingHours"`
	MinSessionDuration int                                `gorm:"not null" json:"minSessionDuration"`
	MaxSessionDuration int                                `gorm:"not null" json:"maxSessionDuration"`
	BufferTime         int                                `gorm:"not null" json:"bufferTime"`

	HourlyRate decimal.Decimal                  `gorm:"type:decimal(10,2);not null" json:"hourlyRate"`
	Currency   string                           `gorm:"size:3;not null" json:"currency"`
	Packages   datatypes.JSONType[[]PricePackage] `json:"packages"`

	UseTimeBlocks bool                            `gorm:"not null" json:"useTimeBlocks"`
	TimeBlocks    datatypes.JSONType[[]TimeBlock] `json:"timeBlocks"`

	RequireDeposit bool            `gorm:"not null" json:"requireDeposit"`
	DepositType    string          `gorm:"size:20;not null" json:"depositType"`
	DepositAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"depositAmount"`

	SendConfirmationEmail bool `json:"sendConfirmationEmail"`
	SendReminderEmail     bool `json:"sendReminderEmail"`
	ReminderHoursBefore   int  `json:"reminderHoursBefore"`

	TermsAndConditions string `gorm:"type:text" json:"termsAndConditions"`
	CancellationPolicy string `gorm:"type:text" json:"cancellationPolicy"`

	AzulEnabled    bool   `json:"azulEnabled"`
	AzulMerchantID string `gorm:"size:120" json:"azulMerchantId"`
	AzulAuthKey    string `gorm:"size:255" json:"-"`
	AzulMode       string `gorm:"size:20;not null" json:"azulMode"`

	SetupCompleted bool `json:"setupCompleted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *BusinessConfig) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// DefaultBusinessConfig is what the singleton row holds before the setup wizard runs.
func DefaultBusinessConfig() BusinessConfig {
	weekday := DayHours{Enabled: true, Open: "09:00", Close: "21:00"}
	return BusinessConfig{
		ID:           BusinessConfigID,
		BusinessName: "CS Booking",
		PrimaryColor: "#000000",
		OperatingHours: datatypes.NewJSONType(OperatingHours{
			"monday":    weekday,
			"tuesday":   weekday,
			"wednesday": weekday,
			"thursday":  weekday,
			"friday":    weekday,
			"saturday":  {Enabled: true, Open: "10:00", Close: "18:00"},
			"sunday":    {Enabled: false, Open: "10:00", Close: "18:00"},
		}),
		MinSessionDuration:    1,
		MaxSessionDuration:    8,
		BufferTime:            0,
		HourlyRate:            decimal.NewFromInt(50),
		Currency:              "USD",
		Packages:              datatypes.NewJSONType([]PricePackage{}),
		TimeBlocks:            datatypes.NewJSONType([]TimeBlock{}),
		DepositType:           "percentage",
		DepositAmount:         decimal.Zero,
		SendConfirmationEmail: true,
		SendReminderEmail:     true,
		ReminderHoursBefore:   24,
		AzulMode:              "sandbox",
	}
}
