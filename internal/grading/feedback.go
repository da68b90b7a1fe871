package grading

// Default learner-facing feedback, in the course language. Authors can
// override every one of these per item, per choice, or per blank.
const (
	DefaultCorrectFeedback         = "¡Correcto!"
	DefaultIncorrectFeedback       = "No es correcto."
	DefaultRetryFeedback           = "Incorrecto. Probá de nuevo."
	DefaultReviewIncorrectFeedback = "Repasá la explicación y volvé a intentar."
	DefaultBlankIncorrectFeedback  = "Revisá esta respuesta."
)

// resolveFeedback walks an override cascade from most to least specific and
// falls back to def. Unset and empty overrides are skipped alike.
func resolveFeedback(def string, overrides ...*string) string {
	for _, o := range overrides {
		if o != nil && *o != "" {
			return *o
		}
	}
	return def
}
