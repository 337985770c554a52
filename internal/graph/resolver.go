package graph

import (
	"context"

	"github.com/changhyeonkim/ambient-toolbox/internal/member"
	"github.com/changhyeonkim/ambient-toolbox/internal/note"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/audit"
)

// Resolver holds the services the GraphQL fields delegate to
type Resolver struct {
	noteService   *note.NoteService
	memberService *member.MemberService
}

func NewResolver(noteService *note.NoteService, memberService *member.MemberService) *Resolver {
	return &Resolver{
		noteService:   noteService,
		memberService: memberService,
	}
}

func (r *Resolver) Resolvers() Resolvers {
	return Resolvers{
		"Query": {
			"ping":  r.ping,
			"me":    r.me,
			"note":  r.note,
			"notes": r.notes,
		},
		"Mutation": {
			"createNote": r.createNote,
			"updateNote": r.updateNote,
		},
	}
}

func (r *Resolver) ping(ctx context.Context, _ any, _ map[string]any) (any, error) {
	return "pong", nil
}

// me is null for anonymous requests
func (r *Resolver) me(ctx context.Context, _ any, _ map[string]any) (any, error) {
	actor, ok := audit.ActorFromContext(ctx)
	if !ok || !actor.Valid() {
		return nil, nil
	}

	profile, err := r.memberService.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}
	return memberObject(profile), nil
}

func (r *Resolver) note(ctx context.Context, _ any, args map[string]any) (any, error) {
	noteID, err := parseID(args["id"])
	if err != nil {
		return nil, err
	}

	response, err := r.noteService.Get(ctx, noteID)
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}
	return noteObject(response), nil
}

func (r *Resolver) notes(ctx context.Context, _ any, _ map[string]any) (any, error) {
	responses, err := r.noteService.List(ctx)
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}

	objects := make([]map[string]any, 0, len(responses))
	for _, response := range responses {
		objects = append(objects, noteObject(response))
	}
	return objects, nil
}

func (r *Resolver) createNote(ctx context.Context, _ any, args map[string]any) (any, error) {
	input := inputObject(args)
	request := &note.CreateNoteRequest{
		Title:   stringValue(input["title"]),
		Content: stringValue(input["content"]),
	}
	if err := validateInput(request); err != nil {
		return nil, err
	}

	response, err := r.noteService.Create(ctx, request)
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}
	return noteObject(response), nil
}

func (r *Resolver) updateNote(ctx context.Context, _ any, args map[string]any) (any, error) {
	input := inputObject(args)
	noteID, err := parseID(input["id"])
	if err != nil {
		return nil, err
	}

	request := &note.UpdateNoteRequest{
		Title:   optionalString(input, "title"),
		Content: optionalString(input, "content"),
	}
	if err := validateInput(request); err != nil {
		return nil, err
	}

	response, err := r.noteService.Update(ctx, noteID, request)
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}
	return noteObject(response), nil
}
