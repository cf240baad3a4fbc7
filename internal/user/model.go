package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Preferences holds a user's cooking preferences. The struct is always
// replaced as a whole on update.
type Preferences struct {
	Diet      string   `json:"diet"`
	Allergies []string `json:"allergies"`
	Cuisines  []string `json:"cuisines"`
}

// Value serializes preferences into the users.preferences text column.
func (p Preferences) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan parses the stored text. Unreadable values read as empty preferences.
func (p *Preferences) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into preferences", src)
	}
	*p = Preferences{}
	if len(b) > 0 {
		_ = json.Unmarshal(b, p)
	}
	p.normalize()
	return nil
}

// MarshalJSON always emits lists, never null.
func (p Preferences) MarshalJSON() ([]byte, error) {
	type Alias Preferences
	p.normalize()
	return json.Marshal(Alias(p))
}

func (p *Preferences) normalize() {
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	if p.Cuisines == nil {
		p.Cuisines = []string{}
	}
}

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64       `json:"id" db:"id"`
	Email        string      `json:"email" db:"email"`
	PasswordHash string      `json:"-" db:"password"`
	Name         string      `json:"name" db:"name"`
	Preferences  Preferences `json:"preferences" db:"preferences"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}

// Public is the user shape returned at login and registration.
type Public struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u *User) Public() Public {
	return Public{ID: u.ID, Email: u.Email, Name: u.Name}
}

// Profile is the user shape returned by /me and profile updates.
type Profile struct {
	ID          int64       `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Preferences Preferences `json:"preferences"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Name: u.Name, Preferences: u.Preferences}
}
