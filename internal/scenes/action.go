package scenes

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrUnknownAction = errors.New("unknown action payload")
	ErrBadAction     = errors.New("malformed action payload")
)

type ActionKind int

const (
	ActionExitScene ActionKind = iota
	ActionBackToProjects
	ActionCreateProject
	ActionSelectProject
	ActionCompetitorsProject
	ActionAddCompetitor
	ActionDeleteCompetitor
	ActionAddHashtag
	ActionCancelHashtagInput
	ActionDeleteHashtag
	ActionManageHashtags
	ActionScrapeCompetitors
	ActionScrapeHashtags
	ActionBackToScrapingMenu
)

// Action is a parsed callback payload. Every handler switches on Kind
// instead of re-matching the raw string.
type Action struct {
	Kind      ActionKind
	ProjectID int64
	Username  string
	Hashtag   string
}

// ParseAction turns a raw callback payload into a typed action. Payloads
// with a non-numeric id segment produce ErrBadAction so callers can show a
// user-facing error without touching session state.
func ParseAction(payload string) (Action, error) {
	switch payload {
	case "exit_scene":
		return Action{Kind: ActionExitScene}, nil
	case "back_to_projects":
		return Action{Kind: ActionBackToProjects}, nil
	case "create_project":
		return Action{Kind: ActionCreateProject}, nil
	case "back_to_scraping_menu":
		return Action{Kind: ActionBackToScrapingMenu}, nil
	}

	idOnly := []struct {
		prefix string
		kind   ActionKind
	}{
		{"competitors_project_", ActionCompetitorsProject},
		{"add_competitor_", ActionAddCompetitor},
		{"add_hashtag_", ActionAddHashtag},
		{"cancel_hashtag_input_", ActionCancelHashtagInput},
		{"manage_hashtags_", ActionManageHashtags},
		{"scrape_competitors_", ActionScrapeCompetitors},
		{"scrape_hashtags_", ActionScrapeHashtags},
		{"project_", ActionSelectProject},
	}
	for _, candidate := range idOnly {
		if rest, ok := strings.CutPrefix(payload, candidate.prefix); ok {
			id, err := strconv.ParseInt(rest, 10, 64)
			if err != nil {
				return Action{}, ErrBadAction
			}
			return Action{Kind: candidate.kind, ProjectID: id}, nil
		}
	}

	if rest, ok := strings.CutPrefix(payload, "delete_competitor_"); ok {
		id, name, err := splitIDAndName(rest)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionDeleteCompetitor, ProjectID: id, Username: name}, nil
	}

	if rest, ok := strings.CutPrefix(payload, "delete_hashtag_"); ok {
		id, tag, err := splitIDAndName(rest)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionDeleteHashtag, ProjectID: id, Hashtag: tag}, nil
	}

	return Action{}, ErrUnknownAction
}

// splitIDAndName parses "<id>_<name>". The name itself may contain
// underscores, so only the first segment is taken as the id.
func splitIDAndName(rest string) (int64, string, error) {
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 || parts[1] == "" {
		return 0, "", ErrBadAction
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", ErrBadAction
	}
	return id, parts[1], nil
}
