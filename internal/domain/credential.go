package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Credential is one captured Telegram web-app authentication payload.
type Credential struct {
	User         User   `json:"user"`
	ChatInstance string `json:"chat_instance"`
	ChatType     string `json:"chat_type"`
	AuthDate     string `json:"auth_date"`
	Signature    string `json:"signature"`
	Hash         string `json:"hash"`
}

// User keeps the identity object exactly as it was captured. Only the id is
// interpreted.
type User struct {
	ID  string
	raw json.RawMessage
}

type userIDProbe struct {
	ID json.RawMessage `json:"id"`
}

func NewUser(data []byte) (User, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return User{}, err
	}

	trimmed := compact.Bytes()
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return User{}, errors.New("user info is not a json object")
	}

	var probe userIDProbe
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return User{}, err
	}

	id, err := userIDString(probe.ID)
	if err != nil {
		return User{}, err
	}
	if id == "" {
		return User{}, errors.New("user id is empty")
	}

	return User{ID: id, raw: json.RawMessage(trimmed)}, nil
}

func userIDString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	if raw[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", err
		}
		return strings.TrimSpace(id), nil
	}

	var id json.Number
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", errors.New("user id must be a string or a number")
	}

	return id.String(), nil
}

func (u User) Raw() json.RawMessage {
	return u.raw
}

func (u User) MarshalJSON() ([]byte, error) {
	if len(u.raw) == 0 {
		return json.Marshal(map[string]string{"id": u.ID})
	}
	return u.raw, nil
}

func (u *User) UnmarshalJSON(data []byte) error {
	parsed, err := NewUser(data)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
