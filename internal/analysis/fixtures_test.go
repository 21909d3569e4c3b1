package analysis

import "github.com/verte-zerg/chiffre/internal/freq"

const frenchPassage = `Il etait une fois dans une petite ville de province une jeune fille qui aimait lire les livres de la bibliotheque municipale. Chaque matin elle traversait la place du marche, saluait le boulanger et le fleuriste, puis elle entrait dans la grande salle silencieuse ou les lecteurs etaient assis devant de longues tables en bois. Elle choisissait toujours un roman different, parfois une histoire de voyage, parfois une enquete policiere, et elle restait la jusqu au soir sans voir le temps passer. Les gens de la ville la connaissaient bien et disaient qu elle deviendrait un jour une grande ecrivaine.`

func french() freq.Language {
	return freq.Builtin()["fr"]
}

func uniformProfile() freq.Profile {
	var p freq.Profile
	for i := range p {
		p[i] = 1.0 / freq.AlphabetSize
	}
	return p
}

type recordedEvent struct {
	msg string
	kv  []interface{}
}

type recordingObserver struct {
	events chan recordedEvent
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{events: make(chan recordedEvent, 1024)}
}

func (r *recordingObserver) Debug(msg string, keysAndValues ...interface{}) {
	r.events <- recordedEvent{msg: msg, kv: keysAndValues}
}

func (r *recordingObserver) messages() map[string]int {
	out := map[string]int{}
	for {
		select {
		case ev := <-r.events:
			out[ev.msg]++
		default:
			return out
		}
	}
}
