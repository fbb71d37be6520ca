//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/roster/internal/paths"
	"github.com/mesh-intelligence/roster/internal/sqlite"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// courseStats summarizes the students enrolled in one course.
type courseStats struct {
	Students int `json:"students"`
	MinYear  int `json:"min_year"`
	MaxYear  int `json:"max_year"`
	// OverDuration counts years past the course duration; renormalize
	// clears them.
	OverDuration int `json:"over_duration"`
}

// Stats prints one JSON line describing the roster database in
// ROSTER_DATA_DIR (default ./.roster-db): the student count, the applied
// schema migrations, and per-course enrollment measured against the
// built-in duration table. A missing database reports zero students.
func Stats() error {
	dataDir, err := paths.ResolveDataDir("", "")
	if err != nil {
		return err
	}
	migrations, err := filepath.Glob("internal/sqlite/migrations/*.up.sql")
	if err != nil {
		return err
	}

	record := struct {
		Database   string                  `json:"database"`
		Migrations int                     `json:"migrations"`
		Students   int                     `json:"students"`
		Courses    map[string]*courseStats `json:"courses"`
	}{
		Database:   filepath.Join(dataDir, sqlite.DBFileName),
		Migrations: len(migrations),
		Courses:    map[string]*courseStats{},
	}

	if _, err := os.Stat(record.Database); err == nil {
		students, err := listStudents(dataDir)
		if err != nil {
			return err
		}
		record.Students = len(students)
		record.Courses = summarizeCourses(students, types.DefaultCourses())
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat database: %w", err)
	}

	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

// summarizeCourses groups students by course. Years above the course's
// duration in durations are counted as OverDuration.
func summarizeCourses(students []types.Student, durations types.CourseTable) map[string]*courseStats {
	out := map[string]*courseStats{}
	for _, s := range students {
		cs, ok := out[s.Course]
		if !ok {
			cs = &courseStats{MinYear: s.Year, MaxYear: s.Year}
			out[s.Course] = cs
		}
		cs.Students++
		cs.MinYear = min(cs.MinYear, s.Year)
		cs.MaxYear = max(cs.MaxYear, s.Year)
		if s.Year > durations.Duration(s.Course) {
			cs.OverDuration++
		}
	}
	return out
}

func listStudents(dataDir string) ([]types.Student, error) {
	b := sqlite.NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	defer b.Detach()
	return b.ListAll(context.Background())
}
