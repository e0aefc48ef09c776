package service

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"educlub_backend/internals/configs"
	"educlub_backend/internals/constants"
	courseModel "educlub_backend/internals/features/courses/model"
	authDTO "educlub_backend/internals/features/users/auth/dto"
	authModel "educlub_backend/internals/features/users/auth/model"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func nowUTC() time.Time { return time.Now().UTC() }

// ========================== REGISTRATION ==========================

// RegisterUser creates the user plus its initial course links in one transaction.
func RegisterUser(db *gorm.DB, req *authDTO.RegisterRequest) (*authModel.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user authModel.User
	err = db.Transaction(func(tx *gorm.DB) error {
		roleID, err := findRoleID(tx, req.Role)
		if err != nil {
			return err
		}

		user = authModel.User{
			RoleID:       roleID,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			PasswordHash: string(hash),
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if req.Role == constants.RoleStudent {
			for _, cid := range req.EnrollCourseIDs {
				if err := tx.Create(&courseModel.Enrollment{UserID: user.ID, CourseID: cid}).Error; err != nil {
					return err
				}
			}
		} else {
			for _, cid := range req.TutorCourseIDs {
				if err := tx.Create(&courseModel.TutorCourse{TutorID: user.ID, CourseID: cid}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return &user, nil
}

func findRoleID(tx *gorm.DB, name string) (int64, error) {
	var role authModel.Role
	if err := tx.Where("name = ?", name).First(&role).Error; err != nil {
		return 0, err
	}
	return role.ID, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}

// ========================== CREDENTIALS ==========================

type userWithRole struct {
	ID           int64  `gorm:"column:id"`
	RoleID       int64  `gorm:"column:role_id"`
	FirstName    string `gorm:"column:first_name"`
	LastName     string `gorm:"column:last_name"`
	Email        string `gorm:"column:email"`
	PasswordHash string `gorm:"column:password_hash"`
	RoleName     string `gorm:"column:role_name"`
}

func (r *userWithRole) toUser() *authModel.User {
	return &authModel.User{
		ID:           r.ID,
		RoleID:       r.RoleID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
	}
}

func findUserWithRole(db *gorm.DB, email string) (*userWithRole, error) {
	var row userWithRole
	err := db.Raw(`
		SELECT u.id, u.role_id, u.first_name, u.last_name, u.email, u.password_hash,
		       r.name AS role_name
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.email = ?
		LIMIT 1`, email).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CheckCredentials resolves a user by email and verifies the password.
func CheckCredentials(db *gorm.DB, email, password string) (*authModel.User, string, error) {
	row, err := findUserWithRole(db, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", err
	}
	if row.ID == 0 {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	return row.toUser(), row.RoleName, nil
}

// ========================== SESSIONS ==========================

// IssueSession persists a new opaque session token for the user.
func IssueSession(db *gorm.DB, userID int64, ip, userAgent string, ttl time.Duration) (*authModel.AuthSession, error) {
	s := &authModel.AuthSession{
		ID:        uuid.New(),
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
		ExpiresAt: nowUTC().Add(ttl),
	}
	if err := db.Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// RevokeSession soft-revokes the session row. Best effort: a failed revoke
// still lets the caller clear the cookie.
func RevokeSession(db *gorm.DB, token string) {
	now := nowUTC()
	if err := db.Model(&authModel.AuthSession{}).
		Where("id = ?::uuid AND revoked_at IS NULL", token).
		Update("revoked_at", now).Error; err != nil {
		log.Printf("[ERROR] revoke session: %v", err)
	}
}

// ========================== GOOGLE SIGN-IN ==========================

type GoogleProfile struct {
	Email     string
	FirstName string
	LastName  string
}

// VerifyGoogleIDToken checks the ID token signature and audience.
func VerifyGoogleIDToken(idToken string) (*GoogleProfile, error) {
	if configs.GoogleClientID == "" {
		return nil, errors.New("google sign-in not configured")
	}
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, err
	}
	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	return &GoogleProfile{
		Email:     strings.ToLower(claims.Email),
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
	}, nil
}

// FindOrCreateGoogleUser maps a verified Google profile to a local user,
// creating a student account on first sign-in.
func FindOrCreateGoogleUser(db *gorm.DB, p *GoogleProfile) (*authModel.User, string, error) {
	row, err := findUserWithRole(db, p.Email)
	if err != nil {
		return nil, "", err
	}
	if row.ID != 0 {
		return row.toUser(), row.RoleName, nil
	}

	roleID, err := findRoleID(db, constants.RoleStudent)
	if err != nil {
		return nil, "", err
	}
	user := authModel.User{
		RoleID:    roleID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		// no local password for Google accounts
		PasswordHash: "",
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, "", err
	}
	return &user, constants.RoleStudent, nil
}
