package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/asciifield/audio"
	"github.com/lixenwraith/asciifield/config"
	"github.com/lixenwraith/asciifield/constants"
	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/engine"
	"github.com/lixenwraith/asciifield/input"
	"github.com/lixenwraith/asciifield/mapfile"
)

var (
	configFlag = flag.String("config", "", "YAML configuration file")
	keymapFlag = flag.String("keymap", "", "YAML key binding overrides")
	debugFlag  = flag.Bool("debug", false, "write logs to "+logDir+"/"+logFileName)
	mapFlag    = flag.String("map", "", "map document to load at start and save to (overrides storage.map)")
	slotFlag   = flag.String("slot", "default", "save slot used when no map file is given")
	muteFlag   = flag.Bool("mute", false, "disable sound effects")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the program crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *mapFlag != "" {
		cfg.Storage.Map = *mapFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	keys := input.DefaultKeyTable()
	if *keymapFlag != "" {
		data, err := os.ReadFile(*keymapFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read keymap: %v\n", err)
			os.Exit(1)
		}
		override, err := input.LoadKeyConfig(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load keymap: %v\n", err)
			os.Exit(1)
		}
		keys = input.MergeKeyTable(keys, override)
	}

	// Initialize audio; the field works without sound
	sound := audio.NewSoundManager()
	if cfg.Audio.Enabled {
		if err := sound.Initialize(); err != nil {
			log.Printf("[main] audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer sound.Cleanup()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashFinalizer(screen.Fini)
	// Normal exit terminal cleanup
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.Clear()

	ctx, err := engine.NewContext(screen, cfg, engine.Options{
		MapPath:  cfg.Storage.Map,
		SlotName: *slotFlag,
		Slots:    mapfile.OpenSlots(cfg.Storage.AppName),
		Sound:    sound,
		Keys:     keys,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to create session: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Close()

	if err := loadInitial(ctx); err != nil {
		log.Printf("[main] initial map not loaded: %v", err)
	}

	run(ctx, screen)
}

// loadInitial restores the configured map file or slot if one exists
func loadInitial(ctx *engine.Context) error {
	var (
		doc *mapfile.Document
		err error
	)
	switch {
	case ctx.MapPath != "":
		if _, statErr := os.Stat(ctx.MapPath); errors.Is(statErr, os.ErrNotExist) {
			return nil
		}
		doc, err = mapfile.ReadFile(ctx.MapPath)
	case ctx.Slots.Exists(ctx.SlotName):
		doc, err = ctx.Slots.Load(ctx.SlotName)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	return mapfile.Apply(doc, ctx.Field, ctx.Agent)
}

func run(ctx *engine.Context, screen tcell.Screen) {
	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()
	sweepTicker := time.NewTicker(constants.KeyReleaseSweepInterval)
	defer sweepTicker.Stop()

	eventChan := make(chan tcell.Event, constants.EventChannelSize)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	ctx.Render()
	for !ctx.Quit() {
		select {
		case ev := <-eventChan:
			if err := ctx.HandleEvent(ev); err != nil {
				log.Printf("[main] event: %v", err)
			}

		case <-ctx.Agent.Ticks():
			if err := ctx.Tick(); err != nil {
				log.Printf("[main] tick: %v", err)
			}

		case <-sweepTicker.C:
			ctx.Sweep()

		case <-frameTicker.C:
			ctx.Render()
		}
	}
}
