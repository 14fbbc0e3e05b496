package bind

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/pagebind/dom"
)

// Panel wiring markers.
const (
	TriggerPrefix = "openerfor_"
	DismissClass  = "delete"
)

// PanelSuffix returns the numeric suffix N of a panel id "<prefix>_<N>".
// The suffix follows the last underscore and must be a non-negative
// decimal number.
func PanelSuffix(id string) (string, error) {
	i := strings.LastIndexByte(id, '_')
	if i < 0 {
		return "", ErrPanelID.With(slog.String("id", id))
	}

	suffix := id[i+1:]
	if _, err := strconv.ParseUint(suffix, 10, 64); err != nil {
		return "", ErrPanelID.With(slog.String("id", id)).Wrap(err)
	}

	return suffix, nil
}

// WirePanel connects panel to its trigger "openerfor_<N>" in doc.
//
// Activating the trigger shows the panel; activating the first descendant
// of the panel with class "delete" hides it again. The trigger carries
// aria-controls and aria-expanded attributes reflecting the panel. The
// visibility of the panel itself is not changed by wiring.
//
// If the trigger is wired but the panel has no dismiss control,
// [ErrNoDismiss] is returned.
func WirePanel(doc dom.Document, panel dom.Element) error {
	id := panel.ID()

	suffix, err := PanelSuffix(id)
	if err != nil {
		return err
	}

	trigger, ok := doc.ByID(TriggerPrefix + suffix)
	if !ok {
		return ErrNoTrigger.With(
			slog.String("panel", id),
			slog.String("trigger", TriggerPrefix+suffix),
		)
	}

	trigger.SetAttr("aria-controls", id)
	trigger.SetAttr("aria-expanded", strconv.FormatBool(!dom.Hidden(panel)))

	trigger.OnActivate(func() {
		dom.Show(panel)
		trigger.SetAttr("aria-expanded", "true")
	})

	dismiss, ok := panel.Find(DismissClass)
	if !ok {
		return ErrNoDismiss.With(slog.String("panel", id))
	}

	dismiss.OnActivate(func() {
		dom.Hide(panel)
		trigger.SetAttr("aria-expanded", "false")
	})

	return nil
}
