package main

import (
	"log"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/unosim/uno"
)

// watchMode runs the simulation against a wiring file, re-reading it
// and rebinding the pins whenever it changes. The session is never
// restarted; a rebind takes effect at the next derivation step.
func watchMode(gui bool, wiringFile string) error {
	wiringFile = filepath.Clean(wiringFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(wiringFile)); err != nil {
		return err
	}

	r := uno.NewRunner(func(on bool) {
		log.Printf("led: %s", onOff(on))
	})
	defer r.Stop()

	go func() {
		started := false
		load := time.After(1 * time.Millisecond)
		for {
			select {
			case <-load:
				pins, err := readWiring(wiringFile)
				if err != nil {
					log.Printf("watch: %v", err)
					break
				}
				if !started {
					log.Printf("watch: start %v", pins)
					if err := r.Start(pins); err != nil {
						log.Printf("watch: %v", err)
						break
					}
					started = true
				} else {
					log.Printf("watch: rebind %v", pins)
					if err := r.Rebind(pins); err != nil {
						log.Printf("watch: %v", err)
					}
				}
			case ev := <-watcher.Event:
				if ev.Name == wiringFile && !ev.IsAttrib() {
					load = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				log.Printf("watch: watcher: %v", err)
			}
		}
	}()

	exit := readCommands(r)
	if gui {
		g := uno.NewGUI(r)
		return g.Run(exit)
	}
	<-exit
	return nil
}
