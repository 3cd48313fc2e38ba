package helpers

import (
	"fmt"
	"strings"

	"github.com/doeshing/assist-core/internal/domain"
)

// ParseParams turns key=value pairs into service data. Values are parsed as
// YAML scalars, so "50" becomes an int and "true" a bool.
func ParseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		value, err := ParseYAMLValue(raw)
		if err != nil {
			return nil, err
		}
		params[key] = value
	}
	return params, nil
}

// ParseRequestLine reads a session line of the form
// "<domain> <action> [entity,...] [key=value ...]".
func ParseRequestLine(conversationID, line string) (domain.SessionRequest, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return domain.SessionRequest{}, fmt.Errorf("expected <domain> <action> [entity,...] [key=value ...]")
	}

	req := domain.SessionRequest{
		ConversationID: conversationID,
		Utterance:      strings.TrimSpace(line),
		Domain:         strings.ToLower(fields[0]),
		Action:         strings.ToLower(fields[1]),
	}

	rest := fields[2:]
	if len(rest) > 0 && !strings.Contains(rest[0], "=") {
		for _, id := range strings.Split(rest[0], ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.EntityIDs = append(req.EntityIDs, id)
			}
		}
		rest = rest[1:]
	}

	params, err := ParseParams(rest)
	if err != nil {
		return domain.SessionRequest{}, err
	}
	req.Params = params
	return req, nil
}
