package domain

// User roles
const (
	RoleEmployer = "employer" // Posts jobs and funds escrow
	RoleWorker   = "worker"   // Applies to jobs and receives payouts
	RoleAdmin    = "admin"    // Audit access only
)

// User Model
type User struct {
	ID          uint    `gorm:"primaryKey"`      // Primary key
	Name        string  `gorm:"not null"`        // Display name
	Email       string  `gorm:"unique;not null"` // Unique email used for login
	Password    string  `gorm:"not null"`        // Hashed password
	Role        string  `gorm:"not null"`        // Role: employer, worker or admin
	RatingAvg   float64 `gorm:"default:0"`       // Running average of received ratings, 2 decimals
	RatingCount int     `gorm:"default:0"`       // Number of ratings received
}
