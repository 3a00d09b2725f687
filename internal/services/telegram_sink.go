package services

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"internhub/internal/repositories"
)

// TelegramSink pushes transition messages to users who linked a
// Telegram chat. Users without a chat id are silently skipped.
type TelegramSink struct {
	bot      *tgbotapi.BotAPI
	users    repositories.UserRepository
	students repositories.StudentRepository
}

// NewTelegramSink returns nil when no bot token is configured; a nil
// sink is simply not registered with the engine.
func NewTelegramSink(botToken string, users repositories.UserRepository, students repositories.StudentRepository) *TelegramSink {
	if botToken == "" {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[tg] warning: bot init failed, telegram notifications disabled: %v", err)
		return nil
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &TelegramSink{bot: bot, users: users, students: students}
}

func (s *TelegramSink) TaskTransitioned(ctx context.Context, ev TransitionEvent) error {
	userID, err := transitionRecipient(s.students, ev)
	if err != nil {
		return err
	}
	if userID == 0 {
		return nil
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil || user.TelegramChatID == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(user.TelegramChatID, transitionMessage(ev))
	if _, err := s.bot.Send(msg); err != nil {
		return err
	}
	return nil
}
