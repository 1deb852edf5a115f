package restriction

import (
	"context"
	"errors"
	"testing"
)

// failingDirectory always fails, simulating an unreachable group backend.
type failingDirectory struct{}

func (failingDirectory) Groups(context.Context, []string) ([]*Group, error) {
	return nil, errors.New("directory unreachable")
}

func TestResolve_UserAttributesOnly(t *testing.T) {
	resolver := NewResolver(nil, nil)

	set := resolver.Resolve(context.Background(), map[string]string{
		"addl-restrict-force-read-only": "true",
	}, nil)

	if !set.Equal(NewSet(ForceReadOnly)) {
		t.Errorf("Resolve() = %v, want {addl-restrict-force-read-only}", set)
	}
}

func TestResolve_UnionWithGroups(t *testing.T) {
	directory := NewStaticDirectory(
		[]string{"auditors"},
		[]string{"kiosk-users"},
	)
	resolver := NewResolver(directory, nil)

	tests := []struct {
		name      string
		userAttrs map[string]string
		memberOf  []string
		want      Set
	}{
		{
			name:     "no restrictions anywhere",
			memberOf: []string{"staff"},
			want:     NewSet(),
		},
		{
			name:     "restriction from one group",
			memberOf: []string{"staff", "auditors"},
			want:     NewSet(ForceReadOnly),
		},
		{
			name:     "restrictions from several groups",
			memberOf: []string{"auditors", "kiosk-users"},
			want:     NewSet(ForceReadOnly, DisallowConcurrent),
		},
		{
			name: "user attribute combines with group",
			userAttrs: map[string]string{
				"addl-restrict-disallow-concurrent": "true",
			},
			memberOf: []string{"auditors"},
			want:     NewSet(ForceReadOnly, DisallowConcurrent),
		},
		{
			name: "user attribute alone, unknown groups omitted",
			userAttrs: map[string]string{
				"addl-restrict-force-read-only": "true",
			},
			memberOf: []string{"no-such-group"},
			want:     NewSet(ForceReadOnly),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(context.Background(), tt.userAttrs, tt.memberOf)
			if !got.Equal(tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_DirectoryFailureDegradesToUserAttributes(t *testing.T) {
	resolver := NewResolver(failingDirectory{}, nil)

	set := resolver.Resolve(context.Background(), map[string]string{
		"addl-restrict-force-read-only": "true",
	}, []string{"auditors"})

	if !set.Equal(NewSet(ForceReadOnly)) {
		t.Errorf("degraded Resolve() = %v, want user restrictions only", set)
	}
}

func TestResolveAttributes_OrderAndDuplicatesIrrelevant(t *testing.T) {
	userAttrs := map[string]string{"addl-restrict-force-read-only": "true"}
	groupA := map[string]string{"addl-restrict-disallow-concurrent": "true"}
	groupB := map[string]string{}

	forward := ResolveAttributes(userAttrs, groupA, groupB)
	backward := ResolveAttributes(userAttrs, groupB, groupA)
	duplicated := ResolveAttributes(userAttrs, groupA, groupA, groupB)

	want := NewSet(ForceReadOnly, DisallowConcurrent)
	for name, got := range map[string]Set{
		"forward": forward, "backward": backward, "duplicated": duplicated,
	} {
		if !got.Equal(want) {
			t.Errorf("%s order = %v, want %v", name, got, want)
		}
	}
}

func TestAttributeDirectory(t *testing.T) {
	store := attributeStoreFunc(func(_ context.Context, name string) (map[string]string, error) {
		switch name {
		case "auditors":
			return map[string]string{"addl-restrict-force-read-only": "true"}, nil
		case "staff":
			return map[string]string{}, nil
		default:
			return nil, errors.New("unknown group")
		}
	})
	directory := NewAttributeDirectory(store)

	groups, err := directory.Groups(context.Background(), []string{"auditors", "staff"})
	if err != nil {
		t.Fatalf("Groups() error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Groups() returned %d groups, want 2", len(groups))
	}
	if !groups[0].Restrictions().Contains(ForceReadOnly) {
		t.Error("auditors should carry ForceReadOnly")
	}
	if len(groups[1].Restrictions()) != 0 {
		t.Error("staff should carry no restrictions")
	}

	_, err = directory.Groups(context.Background(), []string{"missing"})
	if !errors.Is(err, ErrGroupLookup) {
		t.Errorf("expected ErrGroupLookup for unknown group, got %v", err)
	}
}

// attributeStoreFunc adapts a function to the AttributeStore interface.
type attributeStoreFunc func(ctx context.Context, name string) (map[string]string, error)

func (f attributeStoreFunc) GroupAttributes(ctx context.Context, name string) (map[string]string, error) {
	return f(ctx, name)
}
