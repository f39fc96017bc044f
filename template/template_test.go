/*
NAME
  template_test.go

DESCRIPTION
  template_test.go checks template kind resolution, block coverage
  of every layout and the registry constants' basic sanity.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

package template

import "testing"

func TestKindFor(t *testing.T) {
	cases := []struct {
		n    int
		want Kind
	}{
		{1, Items20}, {20, Items20},
		{21, Items50}, {50, Items50},
		{51, Items100}, {100, Items100},
	}
	for _, c := range cases {
		got, err := KindFor(c.n)
		if err != nil {
			t.Fatalf("KindFor(%d) error = %v", c.n, err)
		}
		if got != c.want {
			t.Errorf("KindFor(%d) = %v, want %v", c.n, got, c.want)
		}
	}
	if _, err := KindFor(101); err == nil {
		t.Error("KindFor(101) = nil error, want error")
	}
	if _, err := KindFor(0); err == nil {
		t.Error("KindFor(0) = nil error, want error")
	}
}

func TestRegistryBlockCoverage(t *testing.T) {
	for _, k := range []Kind{Items20, Items50, Items100} {
		l := Lookup(k)
		if err := l.Validate(); err != nil {
			t.Errorf("%v: Validate() error = %v", k, err)
		}
		if got := len(l.SortedQuestions()); got != l.NumItems {
			t.Errorf("%v: SortedQuestions() has %d entries, want %d", k, got, l.NumItems)
		}
	}
}

func TestIDColumnCounts(t *testing.T) {
	if got := Lookup(Items20).ID.Columns; got != 9 {
		t.Errorf("Items20 ID.Columns = %d, want 9", got)
	}
	if got := Lookup(Items50).ID.Columns; got != 9 {
		t.Errorf("Items50 ID.Columns = %d, want 9", got)
	}
	if got := Lookup(Items100).ID.Columns; got != 10 {
		t.Errorf("Items100 ID.Columns = %d, want 10", got)
	}
}

func TestBlockForRowComputation(t *testing.T) {
	l := Lookup(Items50)
	b, row, ok := l.BlockFor(35)
	if !ok {
		t.Fatal("BlockFor(35) not found")
	}
	if b.StartQ != 31 || b.EndQ != 40 {
		t.Errorf("BlockFor(35) block = [%d,%d], want [31,40]", b.StartQ, b.EndQ)
	}
	if row != 4 {
		t.Errorf("BlockFor(35) row = %d, want 4", row)
	}

	if _, _, ok := l.BlockFor(0); ok {
		t.Error("BlockFor(0) = ok, want not found")
	}
	if _, _, ok := l.BlockFor(51); ok {
		t.Error("BlockFor(51) = ok, want not found")
	}
}

func TestNormalizedCoordinatesInBounds(t *testing.T) {
	for _, k := range []Kind{Items20, Items50, Items100} {
		l := Lookup(k)
		if l.ID.FirstNX <= 0 || l.ID.FirstNX >= 1 || l.ID.FirstNY <= 0 || l.ID.FirstNY >= 1 {
			t.Errorf("%v: ID origin out of (0,1): (%v,%v)", k, l.ID.FirstNX, l.ID.FirstNY)
		}
		lastColX := l.ID.FirstNX + float64(l.ID.Columns-1)*l.ID.ColSpacing
		lastRowY := l.ID.FirstNY + float64(l.ID.Rows-1)*l.ID.RowSpacing
		if lastColX >= 1 || lastRowY >= 1 {
			t.Errorf("%v: ID grid extends past frame: (%v,%v)", k, lastColX, lastRowY)
		}
		for _, b := range l.Blocks {
			if b.FirstNX <= 0 || b.FirstNX >= 1 || b.FirstNY <= 0 || b.FirstNY >= 1 {
				t.Errorf("%v: block [%d,%d] origin out of (0,1): (%v,%v)", k, b.StartQ, b.EndQ, b.FirstNX, b.FirstNY)
			}
		}
	}
}
