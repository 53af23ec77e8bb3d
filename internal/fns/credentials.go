package fns

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
)

type Credentials struct {
	AuthToken string
	DeviceID  string
}

// EncodeCredentials derives the basic-auth token and the device id the
// service expects from a phone number and its SMS password. The device id
// is the SHA-1 hex of the token without its first and last two characters.
func EncodeCredentials(phone, password string) Credentials {
	token := base64.StdEncoding.EncodeToString([]byte(phone + ":" + password))
	sum := sha1.Sum([]byte(token))
	digest := hex.EncodeToString(sum[:])

	return Credentials{
		AuthToken: token,
		DeviceID:  digest[2 : len(digest)-2],
	}
}
