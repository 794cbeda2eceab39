package repository

import "testing"

func TestBuildKeywordClause(t *testing.T) {
	clause, args := buildKeywordClause("LIKE", "sofa", []string{"name", " ", "brand"})
	if clause != `name LIKE ? ESCAPE '\' OR brand LIKE ? ESCAPE '\'` {
		t.Fatalf("unexpected clause: %s", clause)
	}
	if len(args) != 2 || args[0] != "%sofa%" || args[1] != "%sofa%" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildKeywordClauseEscapesWildcards(t *testing.T) {
	clause, args := buildKeywordClause("ILIKE", "50%_off", []string{"name"})
	if clause != `name ILIKE ? ESCAPE '\'` {
		t.Fatalf("unexpected clause: %s", clause)
	}
	if args[0] != `%50\%\_off%` {
		t.Fatalf("wildcards should be escaped, got %v", args[0])
	}
}

func TestLikeOperatorDefaultsToLike(t *testing.T) {
	if op := likeOperator(nil); op != "LIKE" {
		t.Fatalf("nil db want LIKE got %s", op)
	}
	if op := likeOperator(openRepositoryTestDB(t)); op != "LIKE" {
		t.Fatalf("sqlite want LIKE got %s", op)
	}
}
