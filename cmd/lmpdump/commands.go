/*
 * commands.go, part of trajectory-parser
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
	"fmt"
	"io"
	"log"
	"time"

	"github.com/scott-cotton/cli"

	dump "github.com/M-S-Jacobs2727/trajectory-parser"
	"github.com/M-S-Jacobs2727/trajectory-parser/traj"
	"github.com/M-S-Jacobs2727/trajectory-parser/traj/bin"
	"github.com/M-S-Jacobs2727/trajectory-parser/traj/txt"
)

type MainConfig struct {
	Bin         bool   `cli:"name=bin desc='read files as binary dumps whatever their name'"`
	Txt         bool   `cli:"name=txt desc='read files as text dumps whatever their name'"`
	Compression string `cli:"name=z desc='compression: gz, zst, lz4 or none. Deduced from the name by default'"`
	Quiet       bool   `cli:"name=q aliases=quiet desc='do not log heads-up messages'"`
	Flags       bool   `cli:"name=flags desc='binary frames carry boundary flags after the triclinic flag, as LAMMPS writes them'"`

	Main *cli.Command
}

//open opens name as a dump file, following the main options.
func (cfg *MainConfig) open(name string) (*dump.Parser, error) {
	O := dump.DefaultOptions()
	if cfg.Quiet {
		O.Logger(log.New(io.Discard, "", 0))
	}
	if cfg.Compression != "" {
		O.Compression(cfg.Compression)
	}
	O.BoundaryFlags(cfg.Flags)
	switch {
	case cfg.Bin && cfg.Txt:
		return nil, fmt.Errorf("%w: -bin and -txt can't be used together", cli.ErrUsage)
	case cfg.Bin:
		return bin.New(name, O)
	case cfg.Txt:
		return txt.New(name, O)
	}
	return traj.Open(name, O)
}

type ScanConfig struct {
	*MainConfig

	Scan *cli.Command
}

type FrameConfig struct {
	*MainConfig
	Index int `cli:"name=i aliases=index desc='index of the frame, counting from 0'"`

	Frame *cli.Command
}

type TimestepConfig struct {
	*MainConfig
	Timestep int `cli:"name=t aliases=timestep desc='timestep of the frame'"`
	Tries    int `cli:"name=tries desc='how many times to look for the timestep in a growing file'"`
	Wait     time.Duration

	TS *cli.Command
}

func (cfg *TimestepConfig) mkWait() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Wait = d
		return d, nil
	}
}

func Root() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "lmpdump").
		WithSynopsis("lmpdump [opts] command [opts] file").
		WithDescription("lmpdump indexes LAMMPS dump trajectories, text or binary, and prints frames from them.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return lmpMain(cfg, cc, args)
		}).
		WithSubs(
			ScanCommand(cfg),
			FrameCommand(cfg),
			TimestepCommand(cfg))
}

func ScanCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ScanConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Scan, "scan").
		WithSynopsis("scan file...").
		WithDescription("index every frame of the files and print their timesteps").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return scan(cfg, cc, args)
		})
}

func FrameCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FrameConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Frame, "frame").
		WithAliases("f").
		WithSynopsis("frame -i N file").
		WithDescription("print a summary of frame N, in YAML").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return frame(cfg, cc, args)
		})
}

func TimestepCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TimestepConfig{MainConfig: mainCfg, Tries: 1, Wait: time.Second}
	waitOpt := &cli.Opt{
		Name:        "wait",
		Description: "time to wait between tries, such as 500ms or 2s",
		Type:        cli.NamedFuncOpt(cfg.mkWait(), "(duration)"),
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, waitOpt)
	return cli.NewCommandAt(&cfg.TS, "timestep").
		WithAliases("ts").
		WithSynopsis("timestep -t T [-tries K -wait D] file").
		WithDescription("print a summary of the frame at timestep T, in YAML. With -tries, a file that is still being written is reread until the timestep shows up").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return timestep(cfg, cc, args)
		})
}
