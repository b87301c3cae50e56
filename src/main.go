package main

import (
	"fmt"
	"os"

	"keep-notes/src/config"
	"keep-notes/src/domain"
	"keep-notes/src/logger"
	"keep-notes/src/notification"
	"keep-notes/src/repository"
	"keep-notes/src/scheduler"
	"keep-notes/src/storage"
	"keep-notes/src/ui"
	"keep-notes/src/usecase"
	"keep-notes/src/validator"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
)

func main() {
	// 設定を読み込み
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗: %v\n", err)
		os.Exit(1)
	}

	// ロガーを初期化
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.Directory); err != nil {
		fmt.Fprintf(os.Stderr, "ロガーの初期化に失敗: %v\n", err)
		os.Exit(1)
	}
	defer logger.CloseLogger()

	logger.Log.Info("アプリケーションを開始しています")

	// ストレージとリポジトリを初期化
	kv, err := storage.NewFileStore(afero.NewOsFs(), cfg.Data.Directory)
	if err != nil {
		logger.Log.WithError(err).Error("ストレージの初期化に失敗")
		fmt.Fprintf(os.Stderr, "ストレージの初期化に失敗: %v\n", err)
		os.Exit(1)
	}
	store := repository.NewNoteStore(kv, logger.Log)
	repo := repository.NewNoteRepository(store, logger.Log)

	notes := usecase.NewNoteUsecase(repo, validator.NewDraftValidator(), logger.Log)

	// リマインダースケジューラを開始（通知無効なら no-op で走らせる）
	var notifier notification.Notifier = notification.NopNotifier{}
	if cfg.Reminder.Notifications {
		notifier = notification.NewDesktopNotifier()
	}
	reminders := scheduler.NewReminderScheduler(repo, notifier, logger.Log,
		scheduler.WithInterval(cfg.Reminder.ScanInterval))
	reminders.Start()
	defer reminders.Stop()

	// TUI を起動
	program := tea.NewProgram(ui.New(notes, repo), tea.WithAltScreen())

	// 永続化完了後の変更通知で表示を更新する（スケジューラ起点の変更用）
	repo.Subscribe(func(domain.ChangeEvent) {
		go program.Send(ui.NotesChangedMsg{})
	})

	if _, err := program.Run(); err != nil {
		logger.Log.WithError(err).Error("UI の実行に失敗")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.Log.Info("アプリケーションを終了します")
}
