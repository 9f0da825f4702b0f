package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"selectsync/internal/config"
	"selectsync/internal/domain"
	"selectsync/internal/eventbus"
	"selectsync/internal/observe"
	"selectsync/internal/picker"
	"selectsync/internal/selection"
	"selectsync/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath string
	var multi, single bool
	flag.StringVar(&configPath, "config", config.FileName, "Configuration file with candidates and selection")
	flag.StringVar(&configPath, "c", config.FileName, "Configuration file (shorthand)")
	flag.BoolVar(&multi, "multi", false, "Force multi-select mode")
	flag.BoolVar(&single, "single", false, "Force single-select mode")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("selectsync.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, existing := loadOrCreateConfig(configSvc)
	switch {
	case multi:
		cfg.Multiselect = true
	case single:
		cfg.Multiselect = false
	}

	// Persist every settled selection
	config.NewSelectionSaver(configSvc, cfg).Subscribe(bus)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			log.Printf("Error: %s: %v", event.Message, event.Err)
		}
	})

	syncer := selection.New(cfg.Settings(), cfg.Fields())
	syncer.SetCandidates(observe.NewList(cfg.Candidates...))

	restoreErr := ui.Restore(syncer, cfg.SelectedIDs())
	if restoreErr != nil {
		// Drop the stale selection rather than refusing to start
		bus.Publish(eventbus.ErrorEvent{Message: "restoring selection", Err: restoreErr})
	}

	p := picker.New(titleOf(cfg))
	if err := syncer.Attach(p); err != nil {
		fmt.Printf("Error initializing picker: %v\n", err)
		os.Exit(1)
	}
	defer syncer.Detach()

	model := ui.NewModel(bus, cfg, syncer, p)
	if restoreErr != nil {
		model.SetStatus(fmt.Sprintf("saved selection dropped: %v", restoreErr))
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(program)

	bus.Publish(eventbus.AppReadyEvent{HasExistingConfig: existing})

	log.Printf("Starting UI...")
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	printSelection(syncer.Selection(), cfg.Fields())
}

// loadOrCreateConfig loads the config file or writes a sample one
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, bool) {
	if _, err := os.Stat(configSvc.Path()); err == nil {
		cfg, err := configSvc.Load()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		return cfg, true
	}

	log.Printf("Creating sample config at %s", configSvc.Path())
	cfg := config.SampleConfig()
	if err := configSvc.Save(cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return cfg, false
}

func titleOf(cfg *config.Config) string {
	if cfg.Title != "" {
		return cfg.Title
	}
	return "selectsync"
}

func printSelection(sel selection.Selection[config.Record], fields domain.Fields[config.Record]) {
	switch s := sel.(type) {
	case selection.Single[config.Record]:
		if s.HasObject {
			fmt.Printf("%s\t%s\n", s.Value, fields.Display(s.Object))
		}
	case selection.Multiple[config.Record]:
		for _, o := range s.Objects {
			fmt.Printf("%s\t%s\n", fields.Value(o), fields.Display(o))
		}
	}
}
