package models

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review is one user's review of one company. The composite unique index
// enforces one review per (company, author) pair, including under
// concurrent submission.
type Review struct {
	BaseModel
	CompanyID   string       `gorm:"not null;index;uniqueIndex:idx_reviews_company_author"`
	AuthorID    string       `gorm:"not null;index;uniqueIndex:idx_reviews_company_author"`
	Rating      int          `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Title       string       `gorm:"not null"`
	Content     string       `gorm:"not null"`
	Pros        string
	Cons        string
	IsAnonymous bool         `gorm:"default:false"`
	IsVerified  bool         `gorm:"default:false"` // snapshot of author's verified flag at creation
	Status      ReviewStatus `gorm:"type:varchar(20);default:'pending';index"`
	ReportCount int          `gorm:"default:0"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID"`
	Author  User    `gorm:"foreignKey:AuthorID"`
}

// ReviewHelpfulVote is the helpful-vote ledger: set membership keyed by
// (review, user), flipped atomically on toggle.
type ReviewHelpfulVote struct {
	ReviewID string `gorm:"primaryKey;type:uuid"`
	UserID   string `gorm:"primaryKey;type:uuid"`
}

// ReviewReport records that a user already reported a review. At most one
// row per (review, user); the primary key is the race guard.
type ReviewReport struct {
	ReviewID string `gorm:"primaryKey;type:uuid"`
	UserID   string `gorm:"primaryKey;type:uuid"`
}
