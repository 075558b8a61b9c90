package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// LocaleMap maps a locale code ("en", "fr", ...) to the translated text.
// It is persisted as a JSON column so the list endpoint can run coarse
// substring filters against the serialized blob.
type LocaleMap map[string]string

// Value implements driver.Valuer.
func (m LocaleMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *LocaleMap) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported locale map source type %T", src)
	}
}

// TagList is a set of free-text labels ("web", "mobile", ...) persisted as a
// JSON array column.
type TagList []string

// Value implements driver.Valuer. A nil list is stored as an empty array so
// the column never carries SQL NULL.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TagList{}
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tag list source type %T", src)
	}
}

// Translation is a keyed multi-locale text record.
type Translation struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Key          string    `json:"key" gorm:"uniqueIndex;size:255;not null"`
	Translations LocaleMap `json:"translations" gorm:"type:json;not null"`
	Tags         TagList   `json:"tags" gorm:"type:json"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
