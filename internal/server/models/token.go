// Package models holds the server-side domain records shared by repositories,
// services and the HTTP transport.
package models

// Token is what signup and signin hand back to the client.
type Token struct {
	AccessToken string `json:"accessToken"`
}
