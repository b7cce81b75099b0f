package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample() *Node {
	root := NewRoot()
	project := root.AddChild("project", Directory)
	src := project.AddChild("src", Directory)
	src.AddChild("main.py", File)
	project.AddChild("README.md", File)
	return root
}

func TestAddChildAssignsDepth(t *testing.T) {
	root := buildSample()
	project := root.Children[0]
	require.Equal(t, 0, project.Depth)
	assert.Equal(t, 1, project.Children[0].Depth)
	assert.Equal(t, 2, project.Children[0].Children[0].Depth)
}

func TestWalkPreOrder(t *testing.T) {
	var visited []string
	Walk(buildSample(), func(n *Node, ancestors []string) bool {
		visited = append(visited, strings.Join(append(append([]string{}, ancestors...), n.Name), "/"))
		return true
	})
	assert.Equal(t, []string{
		"project",
		"project/src",
		"project/src/main.py",
		"project/README.md",
	}, visited)
}

func TestWalkStopsEarly(t *testing.T) {
	count := 0
	Walk(buildSample(), func(*Node, []string) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestCountAndStats(t *testing.T) {
	root := buildSample()
	assert.Equal(t, 4, Count(root))
	dirs, files := Stats(root)
	assert.Equal(t, 2, dirs)
	assert.Equal(t, 2, files)
}

func TestHasChildMatchesNameAndKind(t *testing.T) {
	root := buildSample()
	project := root.Children[0]
	assert.True(t, project.HasChild("src", Directory))
	assert.False(t, project.HasChild("src", File))
	assert.False(t, project.HasChild("missing", File))
}
