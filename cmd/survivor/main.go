package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	yaml "gopkg.in/yaml.v3"

	"github.com/annelo/nightfall/internal/config"
	"github.com/annelo/nightfall/internal/logging"
	"github.com/annelo/nightfall/internal/plugin"
	"github.com/annelo/nightfall/internal/session"
)

var (
	configPath = flag.String("config", "nightfall.yaml", "Путь к файлу настроек")
	seed       = flag.Int64("seed", 0, "Сид симуляции (0 = из настроек или случайный)")
	pluginDir  = flag.String("plugins", "", "Каталог плагинов (пусто = из настроек)")
	logLevel   = flag.String("log-level", "", "Уровень логирования (пусто = из настроек)")
)

func main() {
	// Парсим флаги командной строки
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки настроек: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *pluginDir != "" {
		cfg.PluginDir = *pluginDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	log, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка создания логгера: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1) Реестр и сессия
	reg := plugin.NewDefaultRegistry(log)
	sess, err := session.New(cfg, reg, log)
	if err != nil {
		log.Fatalw("session init failed", "err", err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Warnw("session close failed", "err", err)
		}
	}()

	// 2) Команды администратора
	sess.RegisterCommands()
	pm := plugin.NewPluginManager(cfg.PluginDir, log)
	reg.RegisterCommand("reload", "перезагрузить плагины", func(args []string) (string, error) {
		if err := pm.ReloadPlugins(reg); err != nil {
			return "", err
		}
		loaded, skipped, failed := pm.Stats()
		return fmt.Sprintf("plugins reloaded: loaded=%d skipped=%d failed=%d", loaded, skipped, failed), nil
	})
	reg.RegisterCommand("stop", "остановить симуляцию", func(args []string) (string, error) {
		cancel()
		return "stopping", nil
	})
	reg.RegisterCommand("plugins", "список загруженных плагинов", func(args []string) (string, error) {
		var sb strings.Builder
		for _, meta := range reg.PluginMetas() {
			fmt.Fprintf(&sb, "%s v%s by %s: %s\n", meta.Name, meta.Version, meta.Author, meta.Description)
		}
		return strings.TrimRight(sb.String(), "\n"), nil
	})
	reg.RegisterCommand("config", "config <plugin>: показать настройки плагина", func(args []string) (string, error) {
		if len(args) < 1 {
			return "", fmt.Errorf("%w: config <plugin>", session.ErrUsage)
		}
		pc := reg.PluginConfig(args[0])
		if pc == nil {
			return fmt.Sprintf("no config for plugin %s", args[0]), nil
		}
		data, err := yaml.Marshal(pc)
		if err != nil {
			return "", fmt.Errorf("marshal plugin config: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	})

	// 3) Граница core-регистраций и загрузка плагинов
	reg.MarkCore()
	if err := pm.LoadPlugins(reg); err != nil {
		log.Warnw("plugins not loaded", "dir", cfg.PluginDir, "err", err)
	}

	// Обрабатываем сигналы для корректного завершения
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-signalChan:
			log.Infow("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	// REPL для команд
	go repl(ctx, sess)

	log.Infow("simulation started", "session", sess.ID.String(), "seed", sess.Seed, "tick", cfg.TickInterval)
	sess.Run(ctx)
}

func repl(ctx context.Context, sess *session.Session) {
	reader := bufio.NewReader(os.Stdin)
	for ctx.Err() == nil {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		out, err := sess.Exec(line)
		switch {
		case errors.Is(err, plugin.ErrUnknownCommand):
			fmt.Printf("Неизвестная команда: %s\n", strings.TrimSpace(line))
		case err != nil:
			fmt.Printf("Error: %v\n", err)
		case out != "":
			fmt.Println(out)
		}
	}
}
