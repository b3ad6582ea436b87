package scenes

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-competitor-bot/internal/domain"
)

func btn(text, payload string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, payload)
}

func exitRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(btn("❌ Выход", "exit_scene"))
}

func backToProjectsRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(btn("🔙 К проектам", "back_to_projects"))
}

// projectListKeyboard renders one button per project plus create/exit.
func projectListKeyboard(projects []domain.Project, payloadPrefix string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(projects)+2)
	for _, p := range projects {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			btn("📁 "+p.Name, fmt.Sprintf("%s%d", payloadPrefix, p.ID)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(btn("➕ Создать проект", "create_project")),
		exitRow(),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func emptyProjectsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("➕ Создать проект", "create_project")),
		exitRow(),
	)
}

func projectDetailKeyboard(projectID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn("👥 Конкуренты", fmt.Sprintf("competitors_project_%d", projectID)),
			btn("#️⃣ Хэштеги", fmt.Sprintf("manage_hashtags_%d", projectID)),
		),
		backToProjectsRow(),
		exitRow(),
	)
}

func competitorListKeyboard(projectID int64, competitors []domain.Competitor) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(competitors)+3)
	for _, c := range competitors {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			btn("🗑 @"+c.Username, fmt.Sprintf("delete_competitor_%d_%s", projectID, c.Username)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(btn("➕ Добавить конкурента", fmt.Sprintf("add_competitor_%d", projectID))),
		backToProjectsRow(),
		exitRow(),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func hashtagListKeyboard(projectID int64, hashtags []domain.Hashtag) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(hashtags)+3)
	for _, h := range hashtags {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			btn("🗑 #"+h.Tag, fmt.Sprintf("delete_hashtag_%d_%s", projectID, h.Tag)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(btn("➕ Добавить хэштег", fmt.Sprintf("add_hashtag_%d", projectID))),
		backToProjectsRow(),
		exitRow(),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func hashtagInputKeyboard(projectID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("↩️ Отмена", fmt.Sprintf("cancel_hashtag_input_%d", projectID))),
	)
}

func scrapingMenuKeyboard(projectID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn("👥 Скрейпить конкурентов", fmt.Sprintf("scrape_competitors_%d", projectID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			btn("#️⃣ Скрейпить хэштеги", fmt.Sprintf("scrape_hashtags_%d", projectID)),
		),
		backToProjectsRow(),
		exitRow(),
	)
}

func scrapingResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("🔙 В меню скрейпинга", "back_to_scraping_menu")),
		exitRow(),
	)
}
