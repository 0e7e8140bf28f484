// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package clone

import (
	"github.com/similigh/taskclone/internal/core/config"
	"github.com/similigh/taskclone/internal/core/tasks"
	"github.com/similigh/taskclone/internal/core/tasks/taskstest"
)

var (
	srcRef = tasks.RepoRef{Owner: "pyconuk", Name: "conf-2025"}
	dstRef = tasks.RepoRef{Owner: "pyconuk", Name: "conf-2026"}

	labels = taskstest.Labels
)

func newFakeTracker() *taskstest.FakeTracker {
	return taskstest.NewFakeTracker(srcRef, dstRef)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Source = srcRef.String()
	cfg.Target = dstRef.String()
	return cfg
}

func testSession(f *taskstest.FakeTracker) *Session {
	return &Session{Tracker: f, Login: "maintainer", Source: srcRef, Target: dstRef}
}
