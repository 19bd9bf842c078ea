package plextv

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// WireError mirrors a single item of the plex.tv error envelope.
type WireError struct {
	Code    uint32  `json:"code"`
	Message string  `json:"message"`
	Status  *uint32 `json:"status,omitempty"`
}

// Key returns the catalog key of the item: code*status when a status is
// present, the bare code otherwise. The product is not truncated, so keys
// above math.MaxUint32 never match the catalog.
func (w WireError) Key() uint64 {
	if w.Status != nil {
		return uint64(w.Code) * uint64(*w.Status)
	}
	return uint64(w.Code)
}

// ErrorEnvelope is the body plex.tv returns alongside a non-2xx status.
type ErrorEnvelope struct {
	Errors []WireError `json:"errors"`
}

// APIError is a recognized plex.tv error. Its value is the catalog key.
type APIError uint32

// Catalog of plex.tv errors. The upstream service reuses small codes across
// HTTP statuses, so entries carrying a status are keyed by code*status.
const (
	ClientIdentifierMissing           APIError = 400000
	Unauthorized                      APIError = 401401
	NotFound                          APIError = 404808
	OverRateLimit                     APIError = 430287
	RequestValidationError            APIError = 401600
	MethodNotAllowed                  APIError = 407025
	NotAcceptable                     APIError = 408436
	InternalServerError               APIError = 503500
	UnprocessableEntity               APIError = 425376
	ForbiddenForRestrictedUsers       APIError = 406627
	Blank                             APIError = 1010
	Taken                             APIError = 1011
	ForbiddenForNonSubscribers        APIError = 407836
	ForbiddenForAnonymousUsers        APIError = 408239
	AlreadyExists                     APIError = 427908
	RequiresAnonymousUser             APIError = 409045
	PinNotFoundOrExpired              APIError = 1020
	MFANotEnabled                     APIError = 432550
	NoOTPSecret                       APIError = 432972
	MFAAlreadyEnabled                 APIError = 433394
	MFAInvalid                        APIError = 412228
	MFARequired                       APIError = 412629
	LoginEmailOnly                    APIError = 413030
	LoginIssues                       APIError = 413431
	UserPasswordShort                 APIError = 1032
	UserPasswordBlacklisted           APIError = 1033
	UserPasswordSame                  APIError = 1034
	UserEmailInvalid                  APIError = 1035
	UserUsernameDiffersFromEmail      APIError = 1036
	UserUsernameInvalidCharacters     APIError = 1037
	UserPinInvalid                    APIError = 1038
	UserPasswordConfirmation          APIError = 1039
	InvalidPassword                   APIError = 419120
	InvalidPin                        APIError = 419523
	MissingRole                       APIError = 419926
	Forbidden                         APIError = 420329
	NeedsPassword                     APIError = 420732
	InvalidPasswordOrVerificationCode APIError = 421135
	NeedsPasswordAndVerificationCode  APIError = 421538
	InvalidUsername                   APIError = 441834
	UnavailableUsername               APIError = 442256
	NeedsNonce                        APIError = 442678
	PaymentError                      APIError = 443100
	SubscriptionError                 APIError = 443522
	AlreadySubscribed                 APIError = 430268
	ProInstallerOnly                  APIError = 424359
	InvalidPlan                       APIError = 424762
	InvalidToken                      APIError = 445210
	CodeAlreadyUsed                   APIError = 431904
	InvalidProviderToken              APIError = 446054
	NoEmailProvider                   APIError = 446476
	ProviderAlreadyLinked             APIError = 433131
	CloudServerError                  APIError = 447320
	ProviderRevoked                   APIError = 435010
	UserResetPasswordTokenInvalid     APIError = 1062
	UserPasswordInvalid               APIError = 1063
	ProviderAccountAlreadyLinked      APIError = 435176
	InvalidSettingsFormat             APIError = 449430
	InvalidSubscriptionTime           APIError = 449852
	PlexPassCanceled                  APIError = 450274
	ForbiddenDevice                   APIError = 430404
	CodeExpired                       APIError = 451118
	ProviderNetworkError              APIError = 451540
	WebhookURLInvalid                 APIError = 1071
	InvalidAnonymousToken             APIError = 452384
	EnablingHTTPSWithoutCertificate   APIError = 429200
	RequirementsForSubscriptionNotMet APIError = 453228
	InvalidUserData                   APIError = 453650
	PlanConflicts                     APIError = 454072
	InvalidConsentFormat              APIError = 454494
	ServerTokenRequired               APIError = 435240
	PromoCodeTaken                    APIError = 445810
	GenericValidationError            APIError = 843156
	GenericRequestError               APIError = 799600
	ServiceUnavailable                APIError = 509539
	InvalidCSR                        APIError = 430440
)

type apiErrorInfo struct {
	name    string
	message string
}

// Some upstream entries share a key (NeedsVerification with NeedsPassword,
// NoEmailProviderApple with NoEmailProvider, UserResetPasswordTokenExpired
// with UserResetPasswordTokenInvalid); the first one listed upstream wins.
var apiErrorCatalog = map[APIError]apiErrorInfo{
	ClientIdentifierMissing:           {"ClientIdentifierMissing", "X-Plex-Client-Identifier is missing"},
	Unauthorized:                      {"Unauthorized", "User could not be authenticated"},
	NotFound:                          {"NotFound", "The requested resource or endpoint could not be found"},
	OverRateLimit:                     {"OverRateLimit", "API rate limit exceeded"},
	RequestValidationError:            {"RequestValidationError", "The request was malformed, missed a required parameter or contained invalid values for them"},
	MethodNotAllowed:                  {"MethodNotAllowed", "The request method is not allowed for this endpoint"},
	NotAcceptable:                     {"NotAcceptable", "The requested representation is not acceptable"},
	InternalServerError:               {"InternalServerError", "Internal Server Error. Something went wrong on our end"},
	UnprocessableEntity:               {"UnprocessableEntity", "The server could not perform the action required with the entity provided"},
	ForbiddenForRestrictedUsers:       {"ForbiddenForRestrictedUsers", "Managed users aren't allowed to perform this action"},
	Blank:                             {"Blank", "Required field cannot be blank"},
	Taken:                             {"Taken", "The value provided for the field has already been taken"},
	ForbiddenForNonSubscribers:        {"ForbiddenForNonSubscribers", "You need a subscription to perform this action"},
	ForbiddenForAnonymousUsers:        {"ForbiddenForAnonymousUsers", "You need to sign up to perform this action"},
	AlreadyExists:                     {"AlreadyExists", "Already Exists"},
	RequiresAnonymousUser:             {"RequiresAnonymousUser", "Only Anonymous users can perform this action."},
	PinNotFoundOrExpired:              {"PinNotFoundOrExpired", "Code not found or expired"},
	MFANotEnabled:                     {"MFANotEnabled", "Two-Factor authentication is not enabled yet"},
	NoOTPSecret:                       {"NoOTPSecret", "The account has no OTP secret, please visit secret generation endpoint"},
	MFAAlreadyEnabled:                 {"MFAAlreadyEnabled", "Two-Factor authentication already enabled"},
	MFAInvalid:                        {"MFAInvalid", "Invalid verification code"},
	MFARequired:                       {"MFARequired", "Please enter the verification code"},
	LoginEmailOnly:                    {"LoginEmailOnly", "User could not be authenticated. This account only allows signing in with email address"},
	LoginIssues:                       {"LoginIssues", "User could not be authenticated. This IP appears to be having trouble signing in to an account (detected repeated failures)"},
	UserPasswordShort:                 {"UserPasswordShort", "Password must be at least 8 characters long"},
	UserPasswordBlacklisted:           {"UserPasswordBlacklisted", "Password not allowed (too weak)"},
	UserPasswordSame:                  {"UserPasswordSame", "Password cannot be the same as the username or email"},
	UserEmailInvalid:                  {"UserEmailInvalid", "The value for email must be a valid email address"},
	UserUsernameDiffersFromEmail:      {"UserUsernameDiffersFromEmail", "A different email address cannot be used as username"},
	UserUsernameInvalidCharacters:     {"UserUsernameInvalidCharacters", "The username includes invalid characters"},
	UserPinInvalid:                    {"UserPinInvalid", "PIN must be 4 digits"},
	UserPasswordConfirmation:          {"UserPasswordConfirmation", "The password provided doesn't match the confirmation"},
	InvalidPassword:                   {"InvalidPassword", "A valid password is required to perform this action"},
	InvalidPin:                        {"InvalidPin", "A valid PIN is required to perform this action"},
	MissingRole:                       {"MissingRole", "User is missing the required role to perform this action"},
	Forbidden:                         {"Forbidden", "This action is not available for this user"},
	NeedsPassword:                     {"NeedsPassword", "A valid password is needed to verify the new authentication provider."},
	InvalidPasswordOrVerificationCode: {"InvalidPasswordOrVerificationCode", "A valid password and verification code are required to perform this action"},
	NeedsPasswordAndVerificationCode:  {"NeedsPasswordAndVerificationCode", "A valid password and verification code are required to verify the new authentication provider."},
	InvalidUsername:                   {"InvalidUsername", "The username is invalid."},
	UnavailableUsername:               {"UnavailableUsername", "The username is unavailable."},
	NeedsNonce:                        {"NeedsNonce", "A payment information nonce was not provided"},
	PaymentError:                      {"PaymentError", "An error happened processing the payment method"},
	SubscriptionError:                 {"SubscriptionError", "An error happened creating the subscription"},
	AlreadySubscribed:                 {"AlreadySubscribed", "An active subscription already exists for this user"},
	ProInstallerOnly:                  {"ProInstallerOnly", "This action is only available for Plex Professional Installers"},
	InvalidPlan:                       {"InvalidPlan", "The plan provided is not valid for this user"},
	InvalidToken:                      {"InvalidToken", "The token provided doesn't correspond to a valid discount code"},
	CodeAlreadyUsed:                   {"CodeAlreadyUsed", "The user has already redeemed this discount"},
	InvalidProviderToken:              {"InvalidProviderToken", "The provider token couldn't be validated with the provider"},
	NoEmailProvider:                   {"NoEmailProvider", "The provider doesn't return an email address, please check the scope of the token."},
	ProviderAlreadyLinked:             {"ProviderAlreadyLinked", "The provider is already linked."},
	CloudServerError:                  {"CloudServerError", "Something went wrong when attempting to manipulate the Cloud Server"},
	ProviderRevoked:                   {"ProviderRevoked", "The auth token for this provider has been revoked by the user and is no longer valid"},
	UserResetPasswordTokenInvalid:     {"UserResetPasswordTokenInvalid", "The token is invalid, please request a new one"},
	UserPasswordInvalid:               {"UserPasswordInvalid", "The password is not valid, please make sure its 8 characters long. If admin, it needs to be 10 characters long with at least 1 digit and a combination of lower and uppercase letters."},
	ProviderAccountAlreadyLinked:      {"ProviderAccountAlreadyLinked", "The provider is already linked to another account."},
	InvalidSettingsFormat:             {"InvalidSettingsFormat", "The settings format is not valid. Make sure is an array of hashes with id, type, value and hidden."},
	InvalidSubscriptionTime:           {"InvalidSubscriptionTime", "The subscription end time format is not valid."},
	PlexPassCanceled:                  {"PlexPassCanceled", "The Plex Pass subscription is currently set to cancel. You'll need to reactivate it before you can continue."},
	ForbiddenDevice:                   {"ForbiddenDevice", "This action is not available for this device."},
	CodeExpired:                       {"CodeExpired", "The code provided expired"},
	ProviderNetworkError:              {"ProviderNetworkError", "The request timed out or failed and the provider token couldn't be validated with the provider"},
	WebhookURLInvalid:                 {"WebhookURLInvalid", "The value for url must be a valid URL"},
	InvalidAnonymousToken:             {"InvalidAnonymousToken", "No suitable anonymous user found for the given anonymous token"},
	EnablingHTTPSWithoutCertificate:   {"EnablingHTTPSWithoutCertificate", "Unable to update a certificate. No certificate exists."},
	RequirementsForSubscriptionNotMet: {"RequirementsForSubscriptionNotMet", "User lacks some requirements for this subscription."},
	InvalidUserData:                   {"InvalidUserData", "Unable to read user data."},
	PlanConflicts:                     {"PlanConflicts", "The plan provided conflicts with the user's other existing plan."},
	InvalidConsentFormat:              {"InvalidConsentFormat", "The consent format is not valid. Make sure language is a 2-letters string and vendors is an array of hashes with an integer id and a boolean consent."},
	ServerTokenRequired:               {"ServerTokenRequired", "A valid server token is required to perform this action"},
	PromoCodeTaken:                    {"PromoCodeTaken", "Code already exists for that specific campaign"},
	GenericValidationError:            {"GenericValidationError", "One or more validation errors prevented the action from being performed"},
	GenericRequestError:               {"GenericRequestError", "The request could not be processed"},
	ServiceUnavailable:                {"ServiceUnavailable", "The server cannot handle the request"},
	InvalidCSR:                        {"InvalidCSR", "Invalid CSR"},
}

// ResolveError maps a wire error onto the catalog. The boolean is false for
// keys outside the catalog.
func ResolveError(w WireError) (APIError, bool) {
	raw := w.Key()
	if raw > math.MaxUint32 {
		return 0, false
	}
	key := APIError(raw)
	if _, ok := apiErrorCatalog[key]; !ok {
		return 0, false
	}
	return key, true
}

// Error implements error with the catalog message.
func (e APIError) Error() string {
	if info, ok := apiErrorCatalog[e]; ok {
		return info.message
	}
	return fmt.Sprintf("unknown plex.tv error %d", uint32(e))
}

// Name returns the catalog name, e.g. "PinNotFoundOrExpired".
func (e APIError) Name() string {
	if info, ok := apiErrorCatalog[e]; ok {
		return info.name
	}
	return fmt.Sprintf("APIError(%d)", uint32(e))
}

// APIErrors is an ordered batch of recognized errors from one response.
type APIErrors []APIError

// Contains reports whether target is part of the batch.
func (errs APIErrors) Contains(target APIError) bool {
	for _, e := range errs {
		if e == target {
			return true
		}
	}
	return false
}

func (errs APIErrors) String() string {
	names := make([]string, len(errs))
	for i, e := range errs {
		names[i] = e.Name()
	}
	return strings.Join(names, ", ")
}

// RequestErrorKind classifies a RequestError.
type RequestErrorKind int

const (
	// KindAPI means the server answered with an error envelope.
	KindAPI RequestErrorKind = iota
	// KindSend means the request never produced a readable response.
	KindSend
	// KindDecode means a body did not match the expected shape.
	KindDecode
)

func (k RequestErrorKind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindSend:
		return "send"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// RequestError is returned by every failed Transport call.
type RequestError struct {
	Kind   RequestErrorKind
	Method string
	Path   string
	// Status is the HTTP status code, zero for KindSend.
	Status int
	// Errors holds the recognized envelope items for KindAPI.
	Errors APIErrors
	// Unrecognized holds envelope items outside the catalog.
	Unrecognized []WireError
	// Err is the underlying transport or decode failure.
	Err error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindAPI:
		if len(e.Errors) == 0 {
			return fmt.Sprintf("%s %s: status %d with %d unrecognized error(s)", e.Method, e.Path, e.Status, len(e.Unrecognized))
		}
		return fmt.Sprintf("%s %s: plex.tv returned %s", e.Method, e.Path, e.Errors)
	case KindSend:
		return fmt.Sprintf("%s %s: send request: %v", e.Method, e.Path, e.Err)
	case KindDecode:
		return fmt.Sprintf("%s %s: decode response: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: request failed", e.Method, e.Path)
}

// Unwrap exposes the recognized API errors and the underlying error so that
// errors.Is(err, plextv.Unauthorized) works through wrapping.
func (e *RequestError) Unwrap() []error {
	var out []error
	for _, apiErr := range e.Errors {
		out = append(out, apiErr)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// IsUnauthorized reports whether err carries an Unauthorized API error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, Unauthorized)
}
