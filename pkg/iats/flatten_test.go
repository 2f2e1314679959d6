package iats_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/iats/pkg/iats"
)

func TestFlatten(t *testing.T) {
	node, err := iats.Flatten([]byte(`<IATSRESPONSE>
		<STATUS>Success</STATUS>
		<ERRORS></ERRORS>
		<PROCESSRESULT>
			<AUTHORIZATIONRESULT> OK: 678594: </AUTHORIZATIONRESULT>
			<TRANSACTIONID>A6C2D7E1</TRANSACTIONID>
		</PROCESSRESULT>
	</IATSRESPONSE>`))
	require.NoError(t, err)

	assert.Equal(t, iats.Node{
		"STATUS": iats.Leaf("Success"),
		"ERRORS": iats.Leaf(""),
		"PROCESSRESULT": iats.Node{
			"AUTHORIZATIONRESULT": iats.Leaf("OK: 678594:"),
			"TRANSACTIONID":       iats.Leaf("A6C2D7E1"),
		},
	}, node)
}

func TestFlatten_Empty(t *testing.T) {
	node, err := iats.Flatten(nil)
	require.NoError(t, err)
	assert.Empty(t, node)

	node, err = iats.Flatten([]byte("  \n "))
	require.NoError(t, err)
	assert.Empty(t, node)
}

func TestFlatten_InvalidXML(t *testing.T) {
	_, err := iats.Flatten([]byte(`<a><b></a>`))
	assert.Error(t, err)
}

func TestFlatten_RepeatedSiblingsLastWins(t *testing.T) {
	node, err := iats.Flatten([]byte(`<JOURNALREPORT>
		<TN><TNID>1</TNID></TN>
		<TN><TNID>2</TNID></TN>
	</JOURNALREPORT>`))
	require.NoError(t, err)

	v, ok := node.Lookup("TN", "TNID")
	require.True(t, ok)
	assert.Equal(t, iats.Leaf("2"), v)
}

func TestFlatten_DropsNamespacePrefix(t *testing.T) {
	node, err := iats.Flatten([]byte(`<r xmlns:x="urn:x"><x:STATUS>Success</x:STATUS></r>`))
	require.NoError(t, err)

	assert.Equal(t, "Success", node.Text("STATUS"))
}

func TestFlatten_ElementsWinOverText(t *testing.T) {
	node, err := iats.Flatten([]byte(`<r><CUSTOMERS>noise<CST>1</CST></CUSTOMERS></r>`))
	require.NoError(t, err)

	assert.Equal(t, iats.Node{"CST": iats.Leaf("1")}, node.Child("CUSTOMERS"))
}

func TestFlattenElement_Nil(t *testing.T) {
	assert.Empty(t, iats.FlattenElement(nil))
}

func TestNode_ElementRoundTrip(t *testing.T) {
	node := iats.Node{
		"STATUS": iats.Leaf("Success"),
		"ERRORS": iats.Leaf(""),
		"CUSTOMERS": iats.Node{
			"CST": iats.Node{
				"CSTC": iats.Leaf("A12345"),
				"FN":   iats.Leaf("Test"),
			},
		},
	}

	doc := etree.NewDocument()
	doc.SetRoot(node.Element("IATSRESPONSE"))
	data, err := doc.WriteToBytes()
	require.NoError(t, err)

	again, err := iats.Flatten(data)
	require.NoError(t, err)
	assert.Equal(t, node, again)
}

func TestNode_Accessors(t *testing.T) {
	node := iats.Node{
		"STATUS":        iats.Leaf("Success"),
		"PROCESSRESULT": iats.Node{"AUTHORIZATIONRESULT": iats.Leaf("OK")},
	}

	assert.True(t, node.Has("STATUS"))
	assert.False(t, node.Has("ERRORS"))

	assert.Equal(t, "Success", node.Text("STATUS"))
	assert.Equal(t, "", node.Text("PROCESSRESULT"))
	assert.Equal(t, "", node.Text("MISSING"))

	assert.Equal(t, "OK", node.Child("PROCESSRESULT").Text("AUTHORIZATIONRESULT"))
	assert.Empty(t, node.Child("STATUS"))
	assert.Empty(t, node.Child("MISSING"))

	_, ok := node.Lookup("STATUS", "X")
	assert.False(t, ok)
	_, ok = node.Lookup("PROCESSRESULT", "MISSING")
	assert.False(t, ok)

	v, ok := node.Lookup()
	assert.True(t, ok)
	assert.Equal(t, node, v)
}

func TestNode_ElementTrimsLeaves(t *testing.T) {
	node := iats.Node{"STATUS": iats.Leaf(" Success ")}

	doc := etree.NewDocument()
	doc.SetRoot(node.Element("IATSRESPONSE"))
	data, err := doc.WriteToBytes()
	require.NoError(t, err)

	again, err := iats.Flatten(data)
	require.NoError(t, err)
	assert.Equal(t, "Success", again.Text("STATUS"))
}
