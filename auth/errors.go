package auth

import "errors"

var (
	ErrEmailTaken   = errors.New("Email already registered")
	ErrEmailInvalid = errors.New("Invalid email")
	ErrUnauthorized = errors.New("Unauthorized")
	ErrNotConfirmed = errors.New("Email not confirmed")
	ErrUserNotFound = errors.New("User not found")
)

const unexpectedError = "Une erreur inattendue s'est produite"

// French messages shown to portal users, keyed by the English error text.
var errorMessages = map[string]string{
	"Invalid login credentials": "Identifiants de connexion invalides",
	"Email not confirmed":       "Email non confirmé. Veuillez vérifier votre boîte de réception.",
	"Too many requests":         "Trop de tentatives. Veuillez attendre avant de réessayer.",
	"User not found":            "Utilisateur non trouvé",
	"Invalid email":             "Adresse email invalide",
	"Password too short":        "Le mot de passe doit contenir au moins 8 caractères",
	"Email already registered":  "Cette adresse email est déjà enregistrée",
	"Network error":             "Erreur de connexion. Vérifiez votre connexion internet.",
	"Token expired":             "Session expirée. Veuillez vous reconnecter.",
	"invalid or expired token":  "Session expirée. Veuillez vous reconnecter.",
	"Unauthorized":              "Accès non autorisé",
}

// TranslateError maps a known auth message to French. Unknown messages are
// returned unchanged and an empty one becomes a generic message.
func TranslateError(message string) string {
	if fr, ok := errorMessages[message]; ok {
		return fr
	}
	if message == "" {
		return unexpectedError
	}
	return message
}

// Message translates the first known sentinel in err's chain.
func Message(err error) string {
	if err == nil {
		return unexpectedError
	}
	for _, sentinel := range []error{
		ErrInvalidCredentials, ErrInvalidToken, ErrPasswordTooShort, ErrEmailTaken,
		ErrEmailInvalid, ErrUnauthorized, ErrNotConfirmed, ErrUserNotFound,
	} {
		if errors.Is(err, sentinel) {
			return TranslateError(sentinel.Error())
		}
	}
	return TranslateError(err.Error())
}
