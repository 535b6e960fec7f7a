package persistence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProfileModel mirrors an identity user. The id is the provider's user id.
type ProfileModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	FullName  string    `gorm:"column:full_name"`
	Role      string    `gorm:"column:role;index;not null"`
	AvatarURL string    `gorm:"column:avatar_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ProfileModel) TableName() string { return "profiles" }

// StartupModel is a founder's company. A founder owns at most one.
type StartupModel struct {
	ID          string    `gorm:"column:id;primaryKey;size:36"`
	FounderID   string    `gorm:"column:founder_id;uniqueIndex;size:36;not null"`
	Name        string    `gorm:"column:name;not null"`
	Tagline     string    `gorm:"column:tagline"`
	Description string    `gorm:"column:description;type:text"`
	Sector      string    `gorm:"column:sector;index"`
	Stage       string    `gorm:"column:stage;index"`
	Location    string    `gorm:"column:location"`
	Website     string    `gorm:"column:website"`
	LogoURL     string    `gorm:"column:logo_url"`
	TeamSize    int       `gorm:"column:team_size"`
	RaiseAmount int64     `gorm:"column:raise_amount"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (StartupModel) TableName() string { return "startups" }

// BeforeCreate assigns a UUID.
func (m *StartupModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// InvestorModel is a directory investor. List columns hold lowercase values
// wrapped in commas (",fintech,health,") so one element matches exactly
// with LIKE '%,fintech,%'.
type InvestorModel struct {
	ID           string    `gorm:"column:id;primaryKey;size:36"`
	UserID       *string   `gorm:"column:user_id;uniqueIndex;size:36"`
	Name         string    `gorm:"column:name;not null"`
	Firm         string    `gorm:"column:firm"`
	Title        string    `gorm:"column:title"`
	Bio          string    `gorm:"column:bio;type:text"`
	Sectors      string    `gorm:"column:sectors"`
	Stages       string    `gorm:"column:stages"`
	Geos         string    `gorm:"column:geos"`
	CheckSizeMin *int64    `gorm:"column:check_size_min"`
	CheckSizeMax *int64    `gorm:"column:check_size_max"`
	Website      string    `gorm:"column:website"`
	LinkedinURL  string    `gorm:"column:linkedin_url"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (InvestorModel) TableName() string { return "investors" }

// BeforeCreate assigns a UUID.
func (m *InvestorModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// PipelineEntryModel is one startup on an investor's board.
type PipelineEntryModel struct {
	ID              string    `gorm:"column:id;primaryKey;size:36"`
	InvestorID      string    `gorm:"column:investor_id;uniqueIndex:idx_pipeline_pair;size:36;not null"`
	StartupID       string    `gorm:"column:startup_id;uniqueIndex:idx_pipeline_pair;size:36;not null;index"`
	Stage           string    `gorm:"column:stage;not null;default:to_contact"`
	DiscussionNotes string    `gorm:"column:discussion_notes;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (PipelineEntryModel) TableName() string { return "pipeline_entries" }

// BeforeCreate assigns a UUID.
func (m *PipelineEntryModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// PitchModel is a sent pitch.
type PitchModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	FounderID string    `gorm:"column:founder_id;index;size:36;not null"`
	StartupID *string   `gorm:"column:startup_id;size:36"`
	Subject   string    `gorm:"column:subject;not null"`
	Message   string    `gorm:"column:message;type:text;not null"`
	DeckURL   string    `gorm:"column:deck_url"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

// TableName returns the table name.
func (PitchModel) TableName() string { return "pitches" }

// BeforeCreate assigns a UUID.
func (m *PitchModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// PitchRecipientModel links a pitch to an investor.
type PitchRecipientModel struct {
	PitchID    string    `gorm:"column:pitch_id;primaryKey;size:36"`
	InvestorID string    `gorm:"column:investor_id;primaryKey;size:36;index"`
	Status     string    `gorm:"column:status;not null;default:sent"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (PitchRecipientModel) TableName() string { return "pitch_recipients" }

// NotificationModel is an in-app notification.
type NotificationModel struct {
	ID        string         `gorm:"column:id;primaryKey;size:36"`
	UserID    string         `gorm:"column:user_id;index;size:36;not null"`
	Type      string         `gorm:"column:type;not null"`
	Title     string         `gorm:"column:title"`
	Body      string         `gorm:"column:body;type:text"`
	Data      datatypes.JSON `gorm:"column:data"`
	IsRead    bool           `gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time      `gorm:"column:created_at;index"`
}

// TableName returns the table name.
func (NotificationModel) TableName() string { return "notifications" }

// BeforeCreate assigns a UUID.
func (m *NotificationModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// PaymentModel is a verified payment keyed by provider order id.
type PaymentModel struct {
	OrderID    string    `gorm:"column:order_id;primaryKey"`
	PaymentID  string    `gorm:"column:payment_id;not null"`
	UserID     string    `gorm:"column:user_id;index;size:36"`
	Amount     int64     `gorm:"column:amount"`
	Currency   string    `gorm:"column:currency"`
	Status     string    `gorm:"column:status"`
	VerifiedAt time.Time `gorm:"column:verified_at"`
}

// TableName returns the table name.
func (PaymentModel) TableName() string { return "payments" }
