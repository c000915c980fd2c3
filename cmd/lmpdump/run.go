/*
 * run.go, part of trajectory-parser
 *
 * Copyright 2026 The trajectory-parser authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	dump "github.com/M-S-Jacobs2727/trajectory-parser"
)

func lmpMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

//headings returns a Sprintf that colors its output when w is a terminal.
func headings(w io.Writer) func(format string, a ...any) string {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		c := color.New(color.FgCyan, color.Bold)
		c.EnableColor()
		return c.SprintfFunc()
	}
	return fmt.Sprintf
}

func scan(cfg *ScanConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Scan.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: scan requires at least one file", cli.ErrUsage)
	}
	h := headings(cc.Out)
	for _, name := range args {
		P, err := cfg.open(name)
		if err != nil {
			return err
		}
		err = P.ScanAll()
		P.Close()
		if err != nil {
			return fmt.Errorf("error scanning %s: %w", name, err)
		}
		fmt.Fprintln(cc.Out, h("%s: %d frames", name, P.Len()))
		ts := P.Timesteps()
		strs := make([]string, len(ts))
		for i, v := range ts {
			strs[i] = fmt.Sprint(v)
		}
		fmt.Fprintln(cc.Out, strings.Join(strs, " "))
	}
	return nil
}

func frame(cfg *FrameConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Frame.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: frame requires one file", cli.ErrUsage)
	}
	P, err := cfg.open(args[0])
	if err != nil {
		return err
	}
	defer P.Close()
	F, err := P.Load(cfg.Index)
	if err != nil {
		return err
	}
	if F == nil {
		return fmt.Errorf("%s has only %d frames", args[0], P.Len())
	}
	return printSummary(cc.Out, summarize(args[0], cfg.Index, F))
}

func timestep(cfg *TimestepConfig, cc *cli.Context, args []string) error {
	args, err := cfg.TS.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: timestep requires one file", cli.ErrUsage)
	}
	P, err := cfg.open(args[0])
	if err != nil {
		return err
	}
	defer P.Close()
	F, err := follow(P, int64(cfg.Timestep), cfg.Tries, cfg.Wait)
	if err != nil {
		return err
	}
	return printSummary(cc.Out, summarize(args[0], -1, F))
}

//follow looks for timestep t up to tries times, waiting between tries for
//the file to grow. It gives up at once if the file already went past t.
func follow(P *dump.Parser, t int64, tries int, wait time.Duration) (*dump.Frame, error) {
	for i := 1; ; i++ {
		F, err := P.LoadTimestep(t)
		if err == nil {
			return F, nil
		}
		//Only a NotFound that ran into the end of the file, whole or mid-frame, can change.
		if !dump.IsKind(err, dump.NotFound) || !errors.Is(err, io.EOF) || i >= tries {
			return nil, err
		}
		time.Sleep(wait)
		if err := P.Refresh(); err != nil {
			return nil, err
		}
	}
}

type columnSummary struct {
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Mean float64 `yaml:"mean"`
}

type frameSummary struct {
	File     string          `yaml:"file"`
	Index    *int            `yaml:"index,omitempty"`
	Timestep int64           `yaml:"timestep"`
	Natoms   int64           `yaml:"natoms"`
	Box      []float64       `yaml:"box"`
	Tilt     []float64       `yaml:"tilt,omitempty"`
	Boundary []string        `yaml:"boundary,omitempty"`
	Columns  []columnSummary `yaml:"columns"`
}

//summarize reduces F to its header and per-column statistics. A negative index is left out.
func summarize(name string, index int, F *dump.Frame) *frameSummary {
	S := &frameSummary{
		File:     name,
		Timestep: F.Timestep,
		Natoms:   F.Natoms,
		Box:      F.Box[:],
	}
	if index >= 0 {
		S.Index = &index
	}
	if F.Triclinic() {
		S.Tilt = F.Tilt[:]
	}
	if F.Boundary != [3]string{} {
		S.Boundary = F.Boundary[:]
	}
	D := F.Dense()
	for j, name := range F.Columns {
		cs := columnSummary{Name: name}
		if D != nil {
			col := mat.Col(nil, j, D)
			cs.Min = floats.Min(col)
			cs.Max = floats.Max(col)
			cs.Mean = stat.Mean(col, nil)
		}
		S.Columns = append(S.Columns, cs)
	}
	return S
}

func printSummary(w io.Writer, S *frameSummary) error {
	out, err := yaml.Marshal(S)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
