package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectInfo_WorkspaceAttachedOnce(t *testing.T) {
	info := &ProjectInfo{ProjectUnderTestProjectName: "App.csproj"}

	_, ok := info.Workspace()
	assert.False(t, ok, "workspace must be absent before the initial build")

	first := NewWorkspace("/src/app", "modern")
	require.NoError(t, info.AttachWorkspace(first))

	err := info.AttachWorkspace(NewWorkspace("/elsewhere", "legacy"))
	assert.ErrorIs(t, err, ErrWorkspaceAttached)

	got, ok := info.Workspace()
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.False(t, got.BuiltAt.IsZero())
}

func TestProjectInfo_AttachNilWorkspace(t *testing.T) {
	info := &ProjectInfo{}
	assert.Error(t, info.AttachWorkspace(nil))
	_, ok := info.Workspace()
	assert.False(t, ok)
}

func TestFolderComposite(t *testing.T) {
	root := NewFolder("src", "/src")
	root.Add(NewFile("Program.cs", "/src/Program.cs"))
	models := root.Folder("Models", "/src/Models")
	models.Add(NewFile("User.cs", "/src/Models/User.cs"))

	assert.Same(t, models, root.Folder("Models", "/src/Models"))
	assert.Len(t, root.Children(), 2)
	assert.Equal(t, 2, root.Count())

	var names []string
	for _, f := range root.Files() {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"Program.cs", "User.cs"}, names)
	assert.Nil(t, NewFile("a.cs", "/a.cs").Children())
}
