package screen

import (
	"github.com/tkha/tierquiz/internal/access"
	"github.com/tkha/tierquiz/internal/config"
	"github.com/tkha/tierquiz/internal/engine"
	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/narration"
	"github.com/tkha/tierquiz/internal/questionset"
)

// Deps carries the session services every screen may reach. Screens share
// one Deps for the life of the program.
type Deps struct {
	Config     *config.Config
	Controller *engine.Controller
	Loader     *questionset.Loader
	Gate       *access.Gate
	Narration  *narration.Channel
	Log        *logger.Logger
}

// SubjectName returns the display name of a subject id.
func (d *Deps) SubjectName(id string) string {
	if d.Config != nil {
		if s, ok := d.Config.Subject(id); ok {
			return s.Name
		}
	}
	return id
}
