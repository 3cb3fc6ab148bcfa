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

// Package boxgrid provides BoxArray, a copy-on-write collection of
// axis-aligned index-space boxes that describe the patches of a
// block-structured mesh.
//
// Boxes are kept cell-centered in storage shared between BoxArray
// handles. Each handle reads them through a Transform, which can
// convert index type, coarsen, or map every box onto a band around
// one of its faces without copying the stored boxes. Spatial queries
// are answered from a hash index that is built on first use.
package boxgrid

import "github.com/sirupsen/logrus"

// Version gives the version of this library.
const Version = "1.0.0"

// Log receives debug messages about storage copies and index builds.
// It defaults to the logrus standard logger.
var Log logrus.FieldLogger = logrus.StandardLogger()
