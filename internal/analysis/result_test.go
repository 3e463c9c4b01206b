package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transactions = `id,merchant,amount,hour
1,"ACME, Inc",12.50,9
2,Grocer,15.00,10
3,Grocer,14.25,11
4,Fuel,13.75,12
5,Fuel,12.10,13

6,Cafe,14.90,14
7,Cafe,15.40,15
8,Books,13.30,16
9,Books,12.80,17
10,Books,14.00,18
11,Books,13.10,9
12,Books,12.60,10
13,Books,15.20,11
14,Books,14.70,12
15,Books,13.90,13
16,Books,12.90,14
17,Books,14.40,15
18,Books,13.60,16
19,Books,15.10,17
20,Jeweler,9800.00,3
`

func TestAnalyze_Transactions(t *testing.T) {
	res := Analyze(transactions, NoNoise)

	assert.Equal(t, []string{"id", "merchant", "amount", "hour"}, res.Headers)
	assert.Equal(t, res.Headers, res.AnalyzedColumns)
	assert.Equal(t, 20, res.TotalRows)
	require.Len(t, res.Data, 20)
	assert.Equal(t, []string{"1", "ACME, Inc", "12.50", "9"}, res.Data[0])
	assert.Equal(t, []int{19}, res.FraudulentRows)
	assert.True(t, res.IsFlagged(19))
	assert.False(t, res.IsFlagged(0))
	assert.Equal(t, 19, res.LegitimateRows())

	pct, ok := res.FraudRate()
	require.True(t, ok)
	assert.InDelta(t, 5.0, pct, 1e-9)
}

func TestRun_ExposesStatistics(t *testing.T) {
	a := Run(transactions, NoNoise)
	assert.Equal(t, []int{0, 2, 3}, a.Detection.NumericColumns)
	require.Len(t, a.Detection.Stats, 3)
	assert.Equal(t, "amount", a.Detection.Stats[1].Name)
	assert.Equal(t, 20, a.Detection.Stats[1].Count)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "\n\n", "id,amount\n"} {
		res := Analyze(in, RandomFunc(func() float64 { return 0 }))
		assert.Zero(t, res.TotalRows, "input %q", in)
		assert.NotNil(t, res.Data)
		assert.Empty(t, res.Data)
		assert.NotNil(t, res.Headers)
		assert.NotNil(t, res.AnalyzedColumns)
		assert.Empty(t, res.FraudulentRows)
		_, ok := res.FraudRate()
		assert.False(t, ok, "fraud rate must be guarded for zero rows")
	}
	res := Analyze("id,amount\n", nil)
	assert.Equal(t, []string{"id", "amount"}, res.AnalyzedColumns)
}

func TestAnalyze_EmptyInputJSONShape(t *testing.T) {
	b, err := json.Marshal(Analyze("", NoNoise))
	require.NoError(t, err)
	assert.JSONEq(t, `{"headers":[],"data":[],"totalRows":0,"analyzedColumns":[],"fraudulentRows":[]}`, string(b))
}

func TestAnalyze_AnalyzedColumnsIsACopy(t *testing.T) {
	res := Analyze("a,b\n1,2\n", NoNoise)
	res.AnalyzedColumns[0] = "changed"
	assert.Equal(t, "a", res.Headers[0])
}

func TestResult_Clone(t *testing.T) {
	res := Analyze(transactions, NoNoise)
	c := res.Clone()
	require.Equal(t, res, c)

	c.Data[0][0] = "x"
	c.Headers[0] = "x"
	c.FraudulentRows[0] = 0
	assert.Equal(t, "1", res.Data[0][0])
	assert.Equal(t, "id", res.Headers[0])
	assert.Equal(t, 19, res.FraudulentRows[0])

	var nilRes *Result
	assert.Nil(t, nilRes.Clone())
}

func TestAnalyze_ResultInvariants(t *testing.T) {
	property := func(width uint8, cells [][]int16) bool {
		w := int(width%6) + 1
		var b strings.Builder
		for c := 0; c < w; c++ {
			if c > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, "c%d", c)
		}
		for _, row := range cells {
			b.WriteString("\n")
			for c := 0; c < w; c++ {
				if c > 0 {
					b.WriteString(",")
				}
				if c < len(row) {
					fmt.Fprintf(&b, "%d", row[c])
				}
			}
		}
		res := Analyze(b.String(), DefaultRandom())

		if res.TotalRows != len(res.Data) || len(res.Headers) != w {
			return false
		}
		for i := range res.Headers {
			if res.Headers[i] != res.AnalyzedColumns[i] {
				return false
			}
		}
		prev := -1
		for _, idx := range res.FraudulentRows {
			if idx <= prev || idx >= res.TotalRows {
				return false
			}
			prev = idx
		}
		return true
	}
	if err := quick.Check(property, &quick.Config{MaxCount: 100}); err != nil {
		t.Fatal(err)
	}
}
