// Package emotion defines the closed set of emotions the app works with.
package emotion

import "fmt"

// Emotion is one of the seven recognized emotion labels.
type Emotion string

const (
	Joy      Emotion = "Joy"
	Sadness  Emotion = "Sadness"
	Anger    Emotion = "Anger"
	Fear     Emotion = "Fear"
	Surprise Emotion = "Surprise"
	Disgust  Emotion = "Disgust"
	Calm     Emotion = "Calm"
)

// All returns every emotion in canonical order.
func All() []Emotion {
	return []Emotion{Joy, Sadness, Anger, Fear, Surprise, Disgust, Calm}
}

// Valid reports whether e is one of the seven recognized emotions.
func (e Emotion) Valid() bool {
	switch e {
	case Joy, Sadness, Anger, Fear, Surprise, Disgust, Calm:
		return true
	}
	return false
}

func (e Emotion) String() string { return string(e) }

// Parse converts a raw label into an Emotion.
func Parse(s string) (Emotion, error) {
	e := Emotion(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown emotion %q", s)
	}
	return e, nil
}

// ClampIntensity forces an intensity into the [0,1] range.
func ClampIntensity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
