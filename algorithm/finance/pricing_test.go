package finance

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/quantpricing/algorithm/types"
	"github.com/wyfcoding/quantpricing/xerrors"
)

func TestNormCDF(t *testing.T) {
	if got := NormCDF(0); got != 0.5 {
		t.Errorf("NormCDF(0) = %v, want 0.5", got)
	}
	prev := 0.0
	for x := -8.0; x <= 8.0; x += 0.25 {
		c := NormCDF(x)
		if c < 0 || c > 1 {
			t.Fatalf("NormCDF(%v) = %v out of [0,1]", x, c)
		}
		if c < prev {
			t.Fatalf("NormCDF not monotonic at %v", x)
		}
		prev = c
		if sum := NormCDF(-x) + c; math.Abs(sum-1) > 1e-9 {
			t.Errorf("NormCDF(-%v)+NormCDF(%v) = %v, want 1", x, x, sum)
		}
	}
	if got := NormCDF(1.96); math.Abs(got-0.9750021048517795) > 1e-9 {
		t.Errorf("NormCDF(1.96) = %v", got)
	}
	if got := NormPDF(0); math.Abs(got-1/math.Sqrt(2*math.Pi)) > 1e-12 {
		t.Errorf("NormPDF(0) = %v", got)
	}
}

func TestTheoreticalValueReference(t *testing.T) {
	call, err := TheoreticalValue(100, 100, 1, 0.2, 0.05, types.OptionTypeCall)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if math.Abs(call-10.4506) > 1e-4 {
		t.Errorf("ATM call = %.6f, want ~10.4506", call)
	}

	put, err := TheoreticalValue(100, 100, 1, 0.2, 0.05, types.OptionTypePut)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if math.Abs(put-5.5735) > 1e-4 {
		t.Errorf("ATM put = %.6f, want ~5.5735", put)
	}
}

func TestPutCallParity(t *testing.T) {
	cases := []struct{ s, k, tt, vol, r float64 }{
		{100, 100, 1, 0.2, 0.05},
		{100, 120, 0.5, 0.35, 0.01},
		{42, 40, 0.25, 0.6, 0.03},
		{250, 200, 45.0 / 365, 0.25, 0.04},
	}
	for _, c := range cases {
		call, _ := TheoreticalValue(c.s, c.k, c.tt, c.vol, c.r, types.OptionTypeCall)
		put, _ := TheoreticalValue(c.s, c.k, c.tt, c.vol, c.r, types.OptionTypePut)
		lhs := call - put
		rhs := c.s - c.k*math.Exp(-c.r*c.tt)
		if math.Abs(lhs-rhs) > 1e-6 {
			t.Errorf("parity violated for %+v: C-P=%v, S-Ke^-rT=%v", c, lhs, rhs)
		}
	}
}

func TestTheoreticalValueDegeneracy(t *testing.T) {
	cases := []struct {
		name      string
		s, k, vol float64
		tt        float64
		typ       types.OptionType
		want      float64
	}{
		{"expired itm call", 110, 100, 0.2, 0, types.OptionTypeCall, 10},
		{"expired otm call", 90, 100, 0.2, 0, types.OptionTypeCall, 0},
		{"expired itm put", 90, 100, 0.2, 0, types.OptionTypePut, 10},
		{"expired otm put", 110, 100, 0.2, 0, types.OptionTypePut, 0},
		{"zero vol call", 120, 100, 0, 1, types.OptionTypeCall, 20},
		{"zero vol put", 120, 100, 0, 1, types.OptionTypePut, 0},
	}
	for _, c := range cases {
		got, err := TheoreticalValue(c.s, c.k, c.tt, c.vol, 0.05, c.typ)
		if err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestTheoreticalValueMonotonicInVolatility(t *testing.T) {
	for _, typ := range []types.OptionType{types.OptionTypeCall, types.OptionTypePut} {
		for _, k := range []float64{60, 100, 160} {
			prev := -1.0
			for vol := 0.01; vol <= 1.5; vol += 0.01 {
				v, err := TheoreticalValue(100, k, 0.75, vol, 0.03, typ)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if v < prev-1e-9 {
					t.Fatalf("%s K=%v: value decreased at vol=%v (%v < %v)", typ, k, vol, v, prev)
				}
				prev = v
			}
		}
	}
}

func TestTheoreticalValueNonNegative(t *testing.T) {
	for _, k := range []float64{1, 50, 100, 1000, 1e6} {
		for _, typ := range []types.OptionType{types.OptionTypeCall, types.OptionTypePut} {
			v, err := TheoreticalValue(100, k, 2, 0.05, 0.2, typ)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v < 0 {
				t.Errorf("%s K=%v: negative value %v", typ, k, v)
			}
		}
	}
}

func TestTheoreticalValueInvalidInput(t *testing.T) {
	cases := []struct {
		name             string
		s, k, tt, vol, r float64
	}{
		{"zero spot", 0, 100, 1, 0.2, 0.05},
		{"negative spot", -1, 100, 1, 0.2, 0.05},
		{"zero strike", 100, 0, 1, 0.2, 0.05},
		{"negative vol", 100, 100, 1, -0.1, 0.05},
		{"negative time", 100, 100, -0.5, 0.2, 0.05},
		{"nan rate", 100, 100, 1, 0.2, math.NaN()},
		{"inf spot", math.Inf(1), 100, 1, 0.2, 0.05},
		{"inf strike", 100, math.Inf(1), 1, 0.2, 0.05},
		{"inf time", 100, 100, math.Inf(1), 0.2, 0.05},
		{"inf vol", 100, 100, 1, math.Inf(1), 0.05},
		{"-inf rate", 100, 100, 1, 0.2, math.Inf(-1)},
	}
	for _, c := range cases {
		for _, typ := range []types.OptionType{types.OptionTypeCall, types.OptionTypePut} {
			v, err := TheoreticalValue(c.s, c.k, c.tt, c.vol, c.r, typ)
			if !errors.Is(err, xerrors.ErrInvalidInput) {
				t.Errorf("%s %s: expected ErrInvalidInput, got v=%v err=%v", c.name, typ, v, err)
			}
		}
	}

	_, err := TheoreticalValue(100, 100, 1, 0.2, 0.05, types.OptionType("STRADDLE"))
	if !errors.Is(err, xerrors.ErrInvalidOptionType) {
		t.Errorf("expected ErrInvalidOptionType, got %v", err)
	}
}

func TestTermsConsistency(t *testing.T) {
	tm := ComputeTerms(100, 100, 1, 0.2, 0.05)
	if math.Abs(tm.D1-tm.D2-0.2) > 1e-12 {
		t.Errorf("d1-d2 = %v, want vol*sqrt(T) = 0.2", tm.D1-tm.D2)
	}
	if math.Abs(tm.Discount-math.Exp(-0.05)) > 1e-15 {
		t.Errorf("discount = %v", tm.Discount)
	}
}

func TestBlackScholesCalculator(t *testing.T) {
	bsc := NewBlackScholesCalculator()
	spot := decimal.NewFromInt(100)
	strike := decimal.NewFromInt(100)
	expiry := decimal.NewFromInt(1)
	rate := decimal.NewFromFloat(0.05)
	vol := decimal.NewFromFloat(0.2)

	call, err := bsc.CalculateCallPrice(spot, strike, expiry, rate, vol)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if !call.Round(4).Equal(decimal.RequireFromString("10.4506")) {
		t.Errorf("call = %s, want 10.4506", call.StringFixed(4))
	}

	put, err := bsc.CalculatePutPrice(spot, strike, expiry, rate, vol)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !put.Round(4).Equal(decimal.RequireFromString("5.5735")) {
		t.Errorf("put = %s, want 5.5735", put.StringFixed(4))
	}

	if _, err := bsc.CalculateCallPrice(decimal.Zero, strike, expiry, rate, vol); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
