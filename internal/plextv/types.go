package plextv

import (
	"strings"
	"time"
)

// PinLocation is the geo hint plex.tv attaches to a pin.
type PinLocation struct {
	Code         string `json:"code"`
	Country      string `json:"country"`
	City         string `json:"city"`
	Subdivisions string `json:"subdivisions"`
	Coordinates  string `json:"coordinates"`
}

// Pin mirrors the payload returned by POST /api/v2/pins.
type Pin struct {
	ID               int64       `json:"id"`
	Code             string      `json:"code"`
	Product          string      `json:"product"`
	Trusted          bool        `json:"trusted"`
	Origin           string      `json:"origin"`
	ClientIdentifier string      `json:"clientIdentifier"`
	Location         PinLocation `json:"location"`
	CreatedAt        string      `json:"createdAt"`
	ExpiresAt        string      `json:"expiresAt"`
	ExpiresIn        int         `json:"expiresIn"`
}

// ParsedExpiresAt returns ExpiresAt as time.Time, zero when unparseable.
func (p Pin) ParsedExpiresAt() time.Time {
	return parseTime(p.ExpiresAt)
}

// PinStatus mirrors GET /api/v2/pins/{id}. AuthToken is empty until the user
// has confirmed the link.
type PinStatus struct {
	Pin
	AuthToken       string `json:"authToken"`
	NewRegistration *bool  `json:"newRegistration"`
}

// Authenticated reports whether the pin has been exchanged for a token.
func (s PinStatus) Authenticated() bool {
	return s.AuthToken != ""
}

// Connection is one network path to a resource.
type Connection struct {
	Protocol string `json:"protocol"`
	Address  string `json:"address"`
	Port     int    `json:"port"`
	URI      string `json:"uri"`
	Local    bool   `json:"local"`
	Relay    bool   `json:"relay"`
	IPv6     bool   `json:"IPv6"`
}

// Resource is a device or server registered with the account.
type Resource struct {
	Name             string       `json:"name"`
	Product          string       `json:"product"`
	ProductVersion   string       `json:"productVersion"`
	Platform         string       `json:"platform"`
	PlatformVersion  string       `json:"platformVersion"`
	Device           string       `json:"device"`
	ClientIdentifier string       `json:"clientIdentifier"`
	CreatedAt        string       `json:"createdAt"`
	LastSeenAt       string       `json:"lastSeenAt"`
	Provides         string       `json:"provides"`
	SourceTitle      string       `json:"sourceTitle"`
	PublicAddress    string       `json:"publicAddress"`
	AccessToken      string       `json:"accessToken"`
	Owned            bool         `json:"owned"`
	Presence         bool         `json:"presence"`
	Connections      []Connection `json:"connections"`
}

// Capabilities parses Provides. Unknown entries are returned separately so
// callers can log them.
func (r Resource) Capabilities() (Capabilities, []string) {
	return ParseCapabilities(r.Provides)
}

// IsServer reports whether the resource provides the server capability.
func (r Resource) IsServer() bool {
	caps, _ := r.Capabilities()
	return caps.Has(CapServer)
}

// Capabilities is the set of roles a resource provides.
type Capabilities uint8

const (
	CapServer Capabilities = 1 << iota
	CapClient
	CapPlayer
	CapController
	CapSyncTarget
	CapProviderPlayback
	CapPubSubPlayer
)

var capabilityNames = []struct {
	name string
	cap  Capabilities
}{
	{"server", CapServer},
	{"client", CapClient},
	{"player", CapPlayer},
	{"controller", CapController},
	{"sync-target", CapSyncTarget},
	{"provider-playback", CapProviderPlayback},
	{"pubsub-player", CapPubSubPlayer},
}

// ParseCapabilities parses a comma separated provides string.
func ParseCapabilities(provides string) (Capabilities, []string) {
	var caps Capabilities
	var unknown []string
	for _, part := range strings.Split(provides, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		matched := false
		for _, entry := range capabilityNames {
			if entry.name == name {
				caps |= entry.cap
				matched = true
				break
			}
		}
		if !matched {
			unknown = append(unknown, name)
		}
	}
	return caps, unknown
}

// Has reports whether every capability in want is present.
func (c Capabilities) Has(want Capabilities) bool {
	return c&want == want
}

func (c Capabilities) String() string {
	var names []string
	for _, entry := range capabilityNames {
		if c.Has(entry.cap) {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, ",")
}

// Subscription describes the account's Plex Pass state.
type Subscription struct {
	Active         bool     `json:"active"`
	SubscribedAt   string   `json:"subscribedAt"`
	Status         string   `json:"status"`
	Plan           string   `json:"plan"`
	PaymentService string   `json:"paymentService"`
	Features       []string `json:"features"`
}

// Profile holds playback language preferences.
type Profile struct {
	AutoSelectAudio              bool   `json:"autoSelectAudio"`
	DefaultAudioLanguage         string `json:"defaultAudioLanguage"`
	DefaultSubtitleLanguage      string `json:"defaultSubtitleLanguage"`
	AutoSelectSubtitle           int    `json:"autoSelectSubtitle"`
	DefaultSubtitleAccessibility int    `json:"defaultSubtitleAccessibility"`
	DefaultSubtitleForced        int    `json:"defaultSubtitleForced"`
}

// User mirrors GET /api/v2/user.
type User struct {
	ID                      int64        `json:"id"`
	UUID                    string       `json:"uuid"`
	Username                string       `json:"username"`
	Title                   string       `json:"title"`
	Email                   string       `json:"email"`
	Thumb                   string       `json:"thumb"`
	Locale                  string       `json:"locale"`
	Country                 string       `json:"country"`
	AuthToken               string       `json:"authToken"`
	Confirmed               bool         `json:"confirmed"`
	Guest                   bool         `json:"guest"`
	Anonymous               bool         `json:"anonymous"`
	Home                    bool         `json:"home"`
	HomeAdmin               bool         `json:"homeAdmin"`
	HomeSize                int          `json:"homeSize"`
	MaxHomeSize             int          `json:"maxHomeSize"`
	Protected               bool         `json:"protected"`
	Restricted              bool         `json:"restricted"`
	HasPassword             bool         `json:"hasPassword"`
	EmailOnlyAuth           bool         `json:"emailOnlyAuth"`
	TwoFactorEnabled        bool         `json:"twoFactorEnabled"`
	BackupCodesCreated      bool         `json:"backupCodesCreated"`
	ExperimentalFeatures    bool         `json:"experimentalFeatures"`
	MailingListActive       bool         `json:"mailingListActive"`
	MailingListStatus       string       `json:"mailingListStatus"`
	ScrobbleTypes           string       `json:"scrobbleTypes"`
	CertificateVersion      int          `json:"certificateVersion"`
	RememberExpiresAt       int64        `json:"rememberExpiresAt"`
	Roles                   []string     `json:"roles"`
	Entitlements            []string     `json:"entitlements"`
	Subscription            Subscription `json:"subscription"`
	SubscriptionDescription string       `json:"subscriptionDescription"`
	Profile                 Profile      `json:"profile"`
}

// DisplayName prefers the account title and falls back to the username.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.Title) != "" {
		return u.Title
	}
	return u.Username
}

// Pivot is a navigation pivot of a library directory.
type Pivot struct {
	ID      string `json:"id"`
	Key     string `json:"key"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Context string `json:"context"`
	Symbol  string `json:"symbol"`
}

// Directory is a browsable entry exposed by a media provider feature.
type Directory struct {
	Key    string  `json:"key"`
	HubKey string  `json:"hubKey"`
	Title  string  `json:"title"`
	Type   string  `json:"type"`
	Pivots []Pivot `json:"Pivot"`
}

// Feature is one capability of a media provider (content, search, ...).
type Feature struct {
	Key         string      `json:"key"`
	Type        string      `json:"type"`
	Directories []Directory `json:"Directory"`
}

// MediaProvider is a content source exposed by a server.
type MediaProvider struct {
	Identifier string    `json:"identifier"`
	Title      string    `json:"title"`
	Types      string    `json:"types"`
	Protocols  string    `json:"protocols"`
	Features   []Feature `json:"Feature"`
}

// ContentDirectories returns the directories of the provider's content
// features, in response order.
func (p MediaProvider) ContentDirectories() []Directory {
	var dirs []Directory
	for _, feature := range p.Features {
		if feature.Type != "content" {
			continue
		}
		dirs = append(dirs, feature.Directories...)
	}
	return dirs
}

// mediaContainerRoot mirrors the /media/providers envelope.
type mediaContainerRoot struct {
	MediaContainer struct {
		Size           int             `json:"size"`
		MediaProviders []MediaProvider `json:"MediaProvider"`
	} `json:"MediaContainer"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
