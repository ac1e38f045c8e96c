/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package coloreditor

import (
	"image/color"
	"math"
	"testing"

	"smokescreen/internal/brush"
)

type recorder struct{ got []brush.Descriptor }

func (r *recorder) on(d brush.Descriptor) { r.got = append(r.got, d) }

func (r *recorder) last() brush.Descriptor { return r.got[len(r.got)-1] }

func TestNewEmitsOnceAfterInit(t *testing.T) {
	var rec recorder
	s := New(brush.NewSolid("#80112233"), rec.on)
	if len(rec.got) != 1 {
		t.Fatalf("emitted %d times during init, want 1", len(rec.got))
	}
	if rec.last() != brush.NewSolid("#80112233") {
		t.Fatalf("init emitted %v", rec.last())
	}
	if s.Kind() != brush.KindSolid || s.Angle() != DefaultAngle {
		t.Fatalf("unexpected state kind=%v angle=%v", s.Kind(), s.Angle())
	}
}

func TestNewFromLinear(t *testing.T) {
	start, end := brush.PointsFromAngle(45)
	d := brush.NewLinear("#FF000000", "#00FFFFFF", start, end)
	s := New(d, nil)
	if s.Kind() != brush.KindLinear {
		t.Fatalf("kind = %v", s.Kind())
	}
	if math.Abs(s.Angle()-45) > 1e-9 {
		t.Fatalf("angle = %v, want 45", s.Angle())
	}
	if s.Color(Second) != (color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF}) {
		t.Fatalf("second color = %v", s.Color(Second))
	}
	got := s.Descriptor()
	if got.Linear.StartColor != "#FF000000" || got.Linear.EndColor != "#00FFFFFF" {
		t.Fatalf("descriptor = %v", got)
	}
}

func TestNewFromInvalidColor(t *testing.T) {
	s := New(brush.NewSolid("notacolor"), nil)
	if s.Color(First) != brush.Transparent {
		t.Fatalf("invalid color should load as transparent, got %v", s.Color(First))
	}
	if got := s.Descriptor(); got != brush.NewSolid("#00000000") {
		t.Fatalf("descriptor = %v", got)
	}
}

func TestEveryEditEmits(t *testing.T) {
	var rec recorder
	s := New(brush.DefaultSolid(), rec.on)
	s.SetChannel(First, Red, 0xFF)
	s.SetChannel(First, Alpha, 0x10)
	if rec.last() != brush.NewSolid("#10FF3333") {
		t.Fatalf("after slider edits got %v", rec.last())
	}

	s.SetKind(brush.KindLinear)
	s.SetChannel(Second, Blue, 0x7F)
	s.SetAngle(-90)
	if len(rec.got) != 6 {
		t.Fatalf("emitted %d times, want 6", len(rec.got))
	}
	got := rec.last()
	if got.Kind != brush.KindLinear || got.Linear.StartColor != "#10FF3333" || got.Linear.EndColor != "#0000007F" {
		t.Fatalf("linear descriptor = %v", got)
	}
	if s.Angle() != 270 {
		t.Fatalf("angle = %v, want 270", s.Angle())
	}
	if a := brush.AngleFromPoints(got.Linear.StartPoint, got.Linear.EndPoint); math.Abs(a-270) > 1e-9 {
		t.Fatalf("gradient angle = %v", a)
	}

	s.SetKind("Radial")
	if rec.last().Kind != brush.KindSolid {
		t.Fatalf("unknown kind should fall back to solid")
	}
}

func TestChannel(t *testing.T) {
	s := New(brush.NewSolid("#01020304"), nil)
	want := map[Channel]uint8{Alpha: 1, Red: 2, Green: 3, Blue: 4}
	for ch, v := range want {
		if got := s.Channel(First, ch); got != v {
			t.Errorf("channel %d = %d, want %d", ch, got, v)
		}
	}
}
