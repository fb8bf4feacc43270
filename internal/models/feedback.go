package models

import (
	"fmt"
	"strings"
	"time"
)

// Category classifies a feedback item. Valid values are 1 through 4.
type Category int

const (
	CategoryFeatureRequest Category = iota + 1
	CategoryBugReport
	CategoryImprovement
	CategoryUIUX
)

// Status tracks a feedback item's lifecycle. Valid values are 1 through 4.
type Status int

const (
	StatusOpen Status = iota + 1
	StatusInProgress
	StatusImplemented
	StatusClosed
)

var CategoryLabels = map[Category]string{
	CategoryFeatureRequest: "Feature request",
	CategoryBugReport:      "Bug report",
	CategoryImprovement:    "Improvement",
	CategoryUIUX:           "UI/UX",
}

var StatusLabels = map[Status]string{
	StatusOpen:        "Open",
	StatusInProgress:  "In progress",
	StatusImplemented: "Implemented",
	StatusClosed:      "Closed",
}

func (c Category) Valid() bool { return c >= CategoryFeatureRequest && c <= CategoryUIUX }

func (s Status) Valid() bool { return s >= StatusOpen && s <= StatusClosed }

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Category  Category  `gorm:"not null;index;check:chk_feedbacks_category,category BETWEEN 1 AND 4" json:"category"`
	Status    Status    `gorm:"not null;default:1;index;check:chk_feedbacks_status,status BETWEEN 1 AND 4" json:"status"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Votes     int64     `gorm:"-" json:"votes"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Feedback model
func (Feedback) TableName() string {
	return "feedbacks"
}

// ValidateNewFeedback checks the fields required to create a feedback item
func ValidateNewFeedback(title, content string, category Category) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	if !category.Valid() {
		return fmt.Errorf("%w: category must be between 1 and 4", ErrValidation)
	}
	return nil
}

var feedbackUpdatable = fieldSet("title", "content", "category", "status")

// FeedbackUpdate is a partial update of a feedback item. author_id is not
// updatable.
type FeedbackUpdate struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Category *Category `json:"category"`
	Status   *Status   `json:"status"`
}

// ParseFeedbackUpdate decodes an update body, rejecting keys outside
// {title, content, category, status} with ErrInvalidField.
func ParseFeedbackUpdate(body []byte) (FeedbackUpdate, error) {
	var upd FeedbackUpdate
	if err := decodePartial(body, feedbackUpdatable, &upd); err != nil {
		return FeedbackUpdate{}, err
	}
	if err := upd.Validate(); err != nil {
		return FeedbackUpdate{}, err
	}
	return upd, nil
}

// Validate checks every supplied value against the feedback invariants
func (u FeedbackUpdate) Validate() error {
	if u.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if u.Content != nil && strings.TrimSpace(*u.Content) == "" {
		return fmt.Errorf("%w: content must not be empty", ErrValidation)
	}
	if u.Category != nil && !u.Category.Valid() {
		return fmt.Errorf("%w: category must be between 1 and 4", ErrValidation)
	}
	if u.Status != nil && !u.Status.Valid() {
		return fmt.Errorf("%w: status must be between 1 and 4", ErrValidation)
	}
	return nil
}

func (u FeedbackUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Category == nil && u.Status == nil
}

// Columns returns the column/value pairs to write
func (u FeedbackUpdate) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 4)
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Content != nil {
		cols["content"] = *u.Content
	}
	if u.Category != nil {
		cols["category"] = *u.Category
	}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	return cols
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// FeedbackFilters represents filters for listing feedback
type FeedbackFilters struct {
	Category *Category
	Status   *Status
	Page     int
	Limit    int
}

// Normalize clamps paging values into their supported ranges
func (f FeedbackFilters) Normalize() FeedbackFilters {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

// Offset is the number of rows skipped before the requested page
func (f FeedbackFilters) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPagination computes pages as ceil(total/limit)
func NewPagination(total int64, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

type FeedbackPage struct {
	Feedbacks  []Feedback `json:"feedbacks"`
	Pagination Pagination `json:"pagination"`
}
