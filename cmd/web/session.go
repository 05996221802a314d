package main

import (
	"net/http"

	"github.com/smarthealthquote/smarthealthquote/internal/errors"
	"github.com/smarthealthquote/smarthealthquote/internal/random"
	"github.com/smarthealthquote/smarthealthquote/internal/wizard"
)

const wizardIDSessionKey = "wizardID"

const wizardIDLength = 21

// wizardSession returns the conversation bound to the browser session,
// creating both the wizard ID and the conversation on first use.
func (app *application) wizardSession(r *http.Request) (*wizard.Session, error) {
	ctx := r.Context()
	wizardID := app.sessionManager.GetString(ctx, wizardIDSessionKey)
	if wizardID == "" {
		var err error
		if wizardID, err = random.Letters(wizardIDLength); err != nil {
			return nil, errors.Wrap(err, "generate wizard ID")
		}
		app.sessionManager.Put(ctx, wizardIDSessionKey, wizardID)
	}
	return app.wizards.GetOrCreate(wizardID), nil
}
