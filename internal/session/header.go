package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dunglas/httpsfv"
)

// Header is the request header naming the shopping session.
const Header = "Shopping-Session"

// ParseHeader extracts the session descriptor from a Shopping-Session
// header. Format (RFC 8941 Dictionary):
//
//	id="3f1c…", currency="EUR", client="1.4.0"
//
// The id key is required; currency and client are optional. Unknown keys
// and item parameters are ignored.
func ParseHeader(header string) (*Descriptor, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, errors.New("empty Shopping-Session header")
	}

	dict, err := httpsfv.UnmarshalDictionary([]string{header})
	if err != nil {
		return nil, fmt.Errorf("invalid Shopping-Session header: %w", err)
	}

	id, err := stringMember(dict, "id")
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("id key not found in Shopping-Session header")
	}

	currency, err := stringMember(dict, "currency")
	if err != nil {
		return nil, err
	}
	client, err := stringMember(dict, "client")
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		ID:            id,
		Currency:      strings.ToUpper(currency),
		ClientVersion: client,
	}, nil
}

// stringMember reads an optional string item from the dictionary. Returns
// "" when the key is absent and an error when it is present but not a
// string item.
func stringMember(dict *httpsfv.Dictionary, key string) (string, error) {
	member, ok := dict.Get(key)
	if !ok {
		return "", nil
	}
	item, ok := member.(httpsfv.Item)
	if !ok {
		return "", fmt.Errorf("%s value must be an item", key)
	}
	s, ok := item.Value.(string)
	if !ok {
		return "", fmt.Errorf("%s value must be a string", key)
	}
	return s, nil
}
