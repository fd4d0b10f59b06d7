package model

// Metric is a named quantity tracked by one user.
type Metric struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	UserID      uint     `json:"-" gorm:"not null;index"`
	Name        string   `json:"name" gorm:"size:120;not null"`
	Unit        *string  `json:"unit" gorm:"size:40"`
	TargetValue *float64 `json:"target_value"`
	Color       *string  `json:"color" gorm:"size:20"`

	// Relations
	User    User    `json:"-" gorm:"foreignKey:UserID"`
	Goals   []Goal  `json:"-" gorm:"foreignKey:MetricID;constraint:OnDelete:CASCADE"`
	Entries []Entry `json:"-" gorm:"foreignKey:MetricID;constraint:OnDelete:CASCADE"`
}

// DefaultMetric describes a metric seeded for every new user.
type DefaultMetric struct {
	Name        string
	Unit        string
	TargetValue float64
	Color       string
}

// DefaultMetrics is the fixed catalog created at registration, in order.
var DefaultMetrics = []DefaultMetric{
	{Name: "Water", Unit: "ml", TargetValue: 2000, Color: "#1EA7FF"},
	{Name: "Sleep", Unit: "hours", TargetValue: 8, Color: "#6B7280"},
	{Name: "Steps", Unit: "steps", TargetValue: 10000, Color: "#10B981"},
}

// NewMetric builds an unsaved metric from a catalog definition.
func (d DefaultMetric) NewMetric(userID uint) Metric {
	unit, color, target := d.Unit, d.Color, d.TargetValue
	return Metric{
		UserID:      userID,
		Name:        d.Name,
		Unit:        &unit,
		TargetValue: &target,
		Color:       &color,
	}
}
