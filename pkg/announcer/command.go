package announcer

import (
	"errors"
	"strings"
)

var (
	ErrBlankCommand    = errors.New("I can not find the blank")
	ErrMissingStation  = errors.New("Either one is blank")
	ErrSameStationName = errors.New("The same station name is specified")
)

const fullWidthSpace = "　"

type Command struct {
	Origin      string
	Destination string
}

// ParseCommand reads "<trigger> <origin> <destination>" from a chat message.
// Names may be separated by full-width spaces; tokens after the second name
// are ignored. The returned errors are the reply text.
func ParseCommand(text string, triggerWord string) (Command, error) {
	text = strings.TrimSpace(text)
	if triggerWord != "" {
		text = strings.TrimPrefix(text, triggerWord)
	}
	text = strings.ReplaceAll(text, fullWidthSpace, " ")
	text = strings.TrimSpace(text)

	if text == "" {
		return Command{}, ErrBlankCommand
	}

	names := strings.Fields(text)
	if len(names) < 2 {
		return Command{}, ErrMissingStation
	}

	if names[0] == names[1] {
		return Command{}, ErrSameStationName
	}

	return Command{
		Origin:      names[0],
		Destination: names[1],
	}, nil
}
