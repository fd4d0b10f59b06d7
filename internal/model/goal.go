package model

// GoalPeriod is the window a goal target applies to.
type GoalPeriod string

const (
	GoalPeriodDaily   GoalPeriod = "daily"
	GoalPeriodWeekly  GoalPeriod = "weekly"
	GoalPeriodMonthly GoalPeriod = "monthly"
)

// Goal is a periodic target for a metric. It is persisted but has no API yet.
type Goal struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	MetricID    uint       `json:"metric_id" gorm:"not null;index"`
	TargetValue float64    `json:"target_value" gorm:"not null"`
	Period      GoalPeriod `json:"period" gorm:"type:varchar(20);not null"`
	StartDate   string     `json:"start_date" gorm:"type:char(10);not null"` // YYYY-MM-DD
	EndDate     *string    `json:"end_date" gorm:"type:char(10)"`

	// Relations
	Metric Metric `json:"-" gorm:"foreignKey:MetricID"`
}
