package aggregate

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"
)

// baseTime is a fixed reference point so expiry checks are deterministic.
var baseTime = time.UnixMilli(2000)

func TestAggregate_SumsRepeatedNames(t *testing.T) {
	res := Aggregate([]string{
		"US,x,100,25,y,z",
		"US,x,50,25,y,z",
		"FR,x,0,0,y,z",
	}, nil, baseTime)

	if len(res.Entries) != 2 {
		t.Fatalf("Entries len = %d, want 2", len(res.Entries))
	}
	us := res.Entries["US"]
	if us == nil || us.Tested != 150 || us.Positive != 50 {
		t.Errorf("US = %+v, want tested=150 positive=50", us)
	}
	fr := res.Entries["FR"]
	if fr == nil || fr.Tested != 0 || fr.Positive != 0 {
		t.Errorf("FR = %+v, want tested=0 positive=0", fr)
	}
	if got := strings.Join(res.Order, ","); got != "US,FR" {
		t.Errorf("Order = %q, want %q", got, "US,FR")
	}
	if res.Accepted != 3 || res.Lines != 3 {
		t.Errorf("Accepted/Lines = %d/%d, want 3/3", res.Accepted, res.Lines)
	}
}

func TestAggregate_ExpiredNameExcluded(t *testing.T) {
	expiry := ExpiryTable{"US": 1000}
	res := Aggregate([]string{"US,x,100,25,y,z", "FR,x,10,1,y,z"}, expiry, baseTime)

	if _, ok := res.Entries["US"]; ok {
		t.Fatal("US should be excluded once its expiry has passed")
	}
	if _, ok := res.Get("FR"); !ok {
		t.Error("FR has no expiry and should be present")
	}
	if res.Expired != 1 {
		t.Errorf("Expired = %d, want 1", res.Expired)
	}
	for _, name := range res.Order {
		if name == "US" {
			t.Error("US must not appear in Order")
		}
	}
}

func TestAggregate_ExpiryBoundary(t *testing.T) {
	tests := []struct {
		name    string
		expiry  int64
		present bool
	}{
		{"expiry before now", 1999, false},
		{"expiry equal to now", 2000, true},
		{"expiry after now", 2001, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Aggregate([]string{"US,x,1,1,y,z"}, ExpiryTable{"US": tc.expiry}, baseTime)
			if _, ok := res.Entries["US"]; ok != tc.present {
				t.Errorf("US present = %v, want %v", ok, tc.present)
			}
		})
	}
}

func TestAggregate_ShortLineDroppedSilently(t *testing.T) {
	res := Aggregate([]string{"OnlyTwoFields,5"}, nil, baseTime)
	if len(res.Entries) != 0 {
		t.Errorf("Entries = %v, want none", res.Entries)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none", res.Diagnostics)
	}
	if res.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", res.Dropped)
	}
}

func TestAggregate_TrailingEmptyFieldsDoNotCount(t *testing.T) {
	// Six commas-separated slots but the last two are empty, leaving four fields.
	res := Aggregate([]string{"US,x,100,25,,"}, nil, baseTime)
	if len(res.Entries) != 0 {
		t.Fatalf("Entries = %v, want none", res.Entries)
	}
	if res.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", res.Dropped)
	}
}

func TestAggregate_BadNumberSkipsOnlyThatLine(t *testing.T) {
	res := Aggregate([]string{
		"BR,x,abc,25,y,z",
		"BR,x,10,2,y,z",
		"AR,x,4,notanumber,y,z",
		"AR,x,8,4,y,z",
	}, nil, baseTime)

	if len(res.Diagnostics) != 2 {
		t.Fatalf("Diagnostics len = %d, want 2", len(res.Diagnostics))
	}
	d := res.Diagnostics[0]
	if d.Line != 1 || d.Field != "tested" || d.Text != "BR,x,abc,25,y,z" {
		t.Errorf("first diagnostic = %+v", d)
	}
	if res.Diagnostics[1].Field != "positive" || res.Diagnostics[1].Line != 3 {
		t.Errorf("second diagnostic = %+v", res.Diagnostics[1])
	}

	br, ok := res.Get("BR")
	if !ok || br.Tested != 10 || br.Positive != 2 {
		t.Errorf("BR = %+v, want tested=10 positive=2", br)
	}
	ar, ok := res.Get("AR")
	if !ok || ar.Tested != 8 || ar.Positive != 4 {
		t.Errorf("AR = %+v, want tested=8 positive=4", ar)
	}
}

func TestAggregate_ParseErrorBeforeExpiryCheck(t *testing.T) {
	res := Aggregate([]string{"US,x,oops,1,y,z"}, ExpiryTable{"US": 0}, baseTime)
	if len(res.Diagnostics) != 1 {
		t.Errorf("Diagnostics len = %d, want 1", len(res.Diagnostics))
	}
	if res.Expired != 0 {
		t.Errorf("Expired = %d, want 0", res.Expired)
	}
}

func TestAggregate_TrimsFields(t *testing.T) {
	res := Aggregate([]string{"  DE \t, x , 12 , 3 ,y,z"}, nil, baseTime)
	de, ok := res.Get("DE")
	if !ok {
		t.Fatalf("DE missing, entries=%v", res.Entries)
	}
	if de.Tested != 12 || de.Positive != 3 {
		t.Errorf("DE = %+v, want tested=12 positive=3", de)
	}
}

func TestAggregate_ExtraFieldsIgnored(t *testing.T) {
	res := Aggregate([]string{"IT,a,5,1,b,c,d,e,f"}, nil, baseTime)
	if it, ok := res.Get("IT"); !ok || it.Tested != 5 {
		t.Errorf("IT = %+v ok=%v", it, ok)
	}
}

func TestAggregate_ListIsCopy(t *testing.T) {
	res := Aggregate([]string{"US,x,1,1,y,z"}, nil, baseTime)
	list := res.List()
	list[0].Tested = 999
	if res.Entries["US"].Tested != 1 {
		t.Error("mutating List() output changed the aggregate")
	}
}

func TestParseLine(t *testing.T) {
	rec, err := ParseLine("US,x,100,25,y,z")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if rec.Name != "US" || rec.Tested != 100 || rec.Positive != 25 {
		t.Errorf("rec = %+v", rec)
	}

	if _, err := ParseLine("a,b"); !errors.Is(err, ErrTooFewFields) {
		t.Errorf("short line err = %v, want ErrTooFewFields", err)
	}

	_, err = ParseLine("BR,x,abc,25,y,z")
	if !errors.Is(err, ErrBadNumber) {
		t.Errorf("bad number err = %v, want ErrBadNumber", err)
	}
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("bad number err should wrap *strconv.NumError, got %T", err)
	}
}

func TestParseLine_Overflow(t *testing.T) {
	// Counts are 32-bit in the source format.
	if _, err := ParseLine("US,x,3000000000,1,y,z"); !errors.Is(err, ErrBadNumber) {
		t.Errorf("overflow err = %v, want ErrBadNumber", err)
	}
}

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("a,b\r\nc,d\n\ne,f"))
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	want := []string{"a,b", "c,d", "", "e,f"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}
