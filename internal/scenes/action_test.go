package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		payload string
		want    Action
	}{
		{"exit_scene", Action{Kind: ActionExitScene}},
		{"back_to_projects", Action{Kind: ActionBackToProjects}},
		{"create_project", Action{Kind: ActionCreateProject}},
		{"back_to_scraping_menu", Action{Kind: ActionBackToScrapingMenu}},
		{"project_12", Action{Kind: ActionSelectProject, ProjectID: 12}},
		{"competitors_project_3", Action{Kind: ActionCompetitorsProject, ProjectID: 3}},
		{"add_competitor_7", Action{Kind: ActionAddCompetitor, ProjectID: 7}},
		{"add_hashtag_7", Action{Kind: ActionAddHashtag, ProjectID: 7}},
		{"cancel_hashtag_input_7", Action{Kind: ActionCancelHashtagInput, ProjectID: 7}},
		{"manage_hashtags_9", Action{Kind: ActionManageHashtags, ProjectID: 9}},
		{"scrape_competitors_4", Action{Kind: ActionScrapeCompetitors, ProjectID: 4}},
		{"scrape_hashtags_4", Action{Kind: ActionScrapeHashtags, ProjectID: 4}},
		{"delete_competitor_5_some_user", Action{Kind: ActionDeleteCompetitor, ProjectID: 5, Username: "some_user"}},
		{"delete_hashtag_5_fitness", Action{Kind: ActionDeleteHashtag, ProjectID: 5, Hashtag: "fitness"}},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			got, err := ParseAction(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAction_Malformed(t *testing.T) {
	bad := []string{
		"project_abc",
		"competitors_project_",
		"add_competitor_x1",
		"delete_competitor_5",
		"delete_competitor_notanumber_user",
		"delete_hashtag_5_",
	}

	for _, payload := range bad {
		t.Run(payload, func(t *testing.T) {
			_, err := ParseAction(payload)
			assert.ErrorIs(t, err, ErrBadAction)
		})
	}
}

func TestParseAction_Unknown(t *testing.T) {
	_, err := ParseAction("open_settings")
	assert.ErrorIs(t, err, ErrUnknownAction)
}
