/*
Copyright © 2026 the boxgrid authors.
This file is part of boxgrid.

boxgrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

boxgrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with boxgrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package boxgridutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/boxgrid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to boxgrid.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel sets the minimum level of log messages that are
              printed: panic, fatal, error, warn, info, debug or trace.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "input",
			usage: `
              input specifies the box array file to read. Files ending in
              .cbor hold the binary encoding; all others hold the text
              layout. A further .zst suffix marks a zstd-compressed file.
              "-" reads the text layout from standard input.`,
			shorthand:  "i",
			defaultVal: "-",
			flagsets: []*pflag.FlagSet{infoCmd.Flags(), transformCmd.Flags(), intersectCmd.Flags(),
				complementCmd.Flags(), bndryCmd.Flags(), exportCmd.Flags()},
		},
		{
			name: "legacy",
			usage: `
              legacy specifies that the text input is in the legacy layout:
              a bare box count followed by the boxes.`,
			defaultVal: false,
			flagsets: []*pflag.FlagSet{infoCmd.Flags(), transformCmd.Flags(), intersectCmd.Flags(),
				complementCmd.Flags(), bndryCmd.Flags(), exportCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output specifies where to write the resulting boxes, using the
              same file name conventions as input. For export it must end in
              .geojson or .shp.`,
			shorthand:  "o",
			defaultVal: "-",
			flagsets:   []*pflag.FlagSet{transformCmd.Flags(), bndryCmd.Flags(), exportCmd.Flags()},
		},
		{
			name: "steps",
			usage: `
              steps specifies a TOML file holding a list of [[Steps]] to apply
              in order. When it is set the individual operation options of
              transform are ignored.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{transformCmd.Flags()},
		},
		{
			name: "refine",
			usage: `
              refine specifies the ratio to refine every box by, for example
              2 or 2,2,1. 1 leaves the boxes unchanged.`,
			defaultVal: "1",
			flagsets:   []*pflag.FlagSet{transformCmd.Flags()},
		},
		{
			name: "coarsen",
			usage: `
              coarsen specifies the ratio to coarsen every box by.`,
			defaultVal: "1",
			flagsets:   []*pflag.FlagSet{transformCmd.Flags()},
		},
		{
			name: "grow",
			usage: `
              grow specifies how many indices to grow every box by on each
              side of each axis. For intersect it is the number of ghost
              indices added to the stored boxes.`,
			defaultVal: "0",
			flagsets:   []*pflag.FlagSet{transformCmd.Flags(), intersectCmd.Flags()},
		},
		{
			name: "maxsize",
			usage: `
              maxsize chops boxes longer than this on any axis. 0 leaves the
              boxes whole.`,
			defaultVal: "0",
			flagsets:   []*pflag.FlagSet{transformCmd.Flags()},
		},
		{
			name: "type",
			usage: `
              type specifies the index type to convert the boxes to: cell,
              node, or a per-axis list such as 1,0,0. Empty keeps the
              current type.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{transformCmd.Flags()},
		},
		{
			name: "removeoverlap",
			usage: `
              removeoverlap replaces the boxes with a disjoint set covering the
              same indices.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{transformCmd.Flags()},
		},
		{
			name: "simplify",
			usage: `
              simplify merges boxes sharing a complete face after overlap
              removal.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{transformCmd.Flags()},
		},
		{
			name: "box",
			usage: `
              box specifies the query box, for example "((0,0,0) (7,7,7))".
              Its index type must match the box array.`,
			shorthand:  "b",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{intersectCmd.Flags(), complementCmd.Flags()},
		},
		{
			name: "first",
			usage: `
              first stops the search at the first intersecting box.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{intersectCmd.Flags()},
		},
		{
			name: "ngrow",
			usage: `
              ngrow specifies the width of the band of boundary cells.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{bndryCmd.Flags()},
		},
		{
			name: "layer",
			usage: `
              layer selects the index along the last axis at which box
              footprints are taken. Boxes that do not reach it are skipped.
              -1 exports every box.`,
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{exportCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("BOXGRID")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(infoCmd)
	Root.AddCommand(transformCmd)
	Root.AddCommand(intersectCmd)
	Root.AddCommand(complementCmd)
	Root.AddCommand(bndryCmd)
	Root.AddCommand(exportCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("boxgrid: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("loglevel"))
	if err != nil {
		return fmt.Errorf("boxgrid: invalid loglevel: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "boxgrid",
	Short: "Inspect and manipulate box arrays.",
	Long: `boxgrid reads, transforms and queries box arrays: collections of
axis-aligned index-space boxes describing the patches of a block-structured
mesh. Use the subcommands specified below to access the functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'BOXGRID_var' where 'var' is
the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of boxgrid.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("boxgrid v%s\n", boxgrid.Version)
	},
	DisableAutoGenTag: true,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize a box array.",
	Long: `info prints the number of boxes, the number of indices they cover,
their index type and bounding box, whether they are disjoint, and a
fingerprint of their contents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ba, err := ReadBoxArray(Cfg.GetString("input"), Cfg.GetBool("legacy"))
		if err != nil {
			return err
		}
		return Info(cmd.OutOrStdout(), ba)
	},
	DisableAutoGenTag: true,
}

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Apply operations to a box array.",
	Long: `transform applies operations to every box of a box array and writes
the result. Without --steps the operations run in this order: type, coarsen,
refine, grow, maxsize, removeoverlap.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ba, err := ReadBoxArray(Cfg.GetString("input"), Cfg.GetBool("legacy"))
		if err != nil {
			return err
		}
		var p *Pipeline
		if steps := Cfg.GetString("steps"); steps != "" {
			p, err = ReadPipeline(steps)
		} else {
			p, err = PipelineFromConfig(Cfg)
		}
		if err != nil {
			return err
		}
		if err := p.Apply(ba); err != nil {
			return err
		}
		return WriteBoxArray(Cfg.GetString("output"), ba, cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var intersectCmd = &cobra.Command{
	Use:   "intersect",
	Short: "Find the boxes that intersect a box.",
	Long: `intersect prints the index of every box that intersects the box
given by --box, and the intersection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ba, err := ReadBoxArray(Cfg.GetString("input"), Cfg.GetBool("legacy"))
		if err != nil {
			return err
		}
		q, err := boxgrid.ParseBox(Cfg.GetString("box"))
		if err != nil {
			return err
		}
		ng, err := IntVect(Cfg.Get("grow"))
		if err != nil {
			return fmt.Errorf("boxgrid: grow: %v", err)
		}
		return Intersections(cmd.OutOrStdout(), ba, q, Cfg.GetBool("first"), ng)
	},
	DisableAutoGenTag: true,
}

var complementCmd = &cobra.Command{
	Use:   "complement",
	Short: "Find the parts of a box not covered by a box array.",
	Long: `complement prints the indices of the box given by --box that are
not in any box of the box array, as a list of disjoint boxes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ba, err := ReadBoxArray(Cfg.GetString("input"), Cfg.GetBool("legacy"))
		if err != nil {
			return err
		}
		q, err := boxgrid.ParseBox(Cfg.GetString("box"))
		if err != nil {
			return err
		}
		if q.Type != ba.IxType() {
			return fmt.Errorf("boxgrid: box type %v does not match box array type %v", q.Type, ba.IxType())
		}
		for _, b := range ba.ComplementIn(q) {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), b); err != nil {
				return err
			}
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var bndryCmd = &cobra.Command{
	Use:   "bndry",
	Short: "Find the boundary cells of a box array.",
	Long: `bndry writes the indices within --ngrow cells of the box array that
are not themselves in the box array.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ba, err := ReadBoxArray(Cfg.GetString("input"), Cfg.GetBool("legacy"))
		if err != nil {
			return err
		}
		bl := boxgrid.GetBndryCells(ba, Cfg.GetInt("ngrow"))
		return WriteBoxArray(Cfg.GetString("output"), boxgrid.NewBoxArrayFromList(bl), cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export box footprints as GeoJSON or a shapefile.",
	Long: `export writes the footprint of every box in the plane of the first two
axes, with one index as one unit of distance, to a GeoJSON (.geojson) or
shapefile (.shp) file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ba, err := ReadBoxArray(Cfg.GetString("input"), Cfg.GetBool("legacy"))
		if err != nil {
			return err
		}
		return Export(Cfg.GetString("output"), ba, Cfg.GetInt("layer"))
	},
	DisableAutoGenTag: true,
}
