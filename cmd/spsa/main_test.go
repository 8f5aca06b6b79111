package main

import (
	"errors"
	"testing"
	"time"
)

func TestDrainWatch(t *testing.T) {
	tests := []struct {
		name       string
		events     []string
		errs       []error
		closeEv    bool
		closeErr   bool
		want       bool
		wantEvents bool
		wantErrs   bool
	}{
		{"idle", nil, nil, false, false, false, true, true},
		{"matching_save", []string{"prefabs/enemies.yaml"}, nil, false, false, true, true, true},
		{"other_file", []string{"prefabs/player.yaml"}, nil, false, false, false, true, true},
		{"errors_closed", nil, nil, false, true, false, true, false},
		{"both_closed", []string{"prefabs/enemies.yaml"}, []error{errors.New("boom")}, true, true, true, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			events := make(chan string, len(tc.events))
			errs := make(chan error, len(tc.errs))
			for _, e := range tc.events {
				events <- e
			}
			for _, err := range tc.errs {
				errs <- err
			}
			if tc.closeEv {
				close(events)
			}
			if tc.closeErr {
				close(errs)
			}
			p := &previewer{file: "enemies.yaml", events: events, errs: errs}

			done := make(chan bool, 1)
			go func() { done <- p.drainWatch() }()
			select {
			case got := <-done:
				if got != tc.want {
					t.Fatalf("expected changed=%v, got %v", tc.want, got)
				}
			case <-time.After(time.Second):
				t.Fatalf("drainWatch did not return")
			}
			if (p.events != nil) != tc.wantEvents || (p.errs != nil) != tc.wantErrs {
				t.Fatalf("expected events kept=%v errs kept=%v, got %v %v", tc.wantEvents, tc.wantErrs, p.events != nil, p.errs != nil)
			}
		})
	}
}
