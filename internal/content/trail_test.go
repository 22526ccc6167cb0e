package content_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/content"
	"github.com/rkive-app/rkive-api/internal/user"
	"gorm.io/datatypes"
)

type fakeContentRepo struct {
	contents []*content.Content
}

func (f *fakeContentRepo) Create(c *content.Content) error {
	f.contents = append(f.contents, c)
	return nil
}
func (f *fakeContentRepo) GetByID(id uuid.UUID) (*content.Content, error) {
	for _, c := range f.contents {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeContentRepo) List() ([]*content.Content, error) { return f.contents, nil }
func (f *fakeContentRepo) Update(c *content.Content) error   { return nil }
func (f *fakeContentRepo) Delete(id uuid.UUID) error         { return nil }

func intPtr(v int) *int { return &v }

func TestIsVisibleTo(t *testing.T) {
	u := &user.User{ID: uuid.New(), Unit: "Matriz", Sector: "CS", Position: "Analista"}

	t.Run("SetorTodosLiberaGeral", func(t *testing.T) {
		c := &content.Content{Sector: content.SectorAll}
		if !c.IsVisibleTo(u) {
			t.Error("Conteúdo de setor Todos deveria ser visível.")
		}
	})

	t.Run("UnidadeDiferenteBloqueia", func(t *testing.T) {
		c := &content.Content{Unit: "Filial"}
		if c.IsVisibleTo(u) {
			t.Error("Conteúdo de outra unidade não deveria ser visível.")
		}
	})

	t.Run("CargoFiltrado", func(t *testing.T) {
		c := &content.Content{
			Sector:    "CS",
			Positions: datatypes.NewJSONSlice([]string{"Supervisor"}),
		}
		if c.IsVisibleTo(u) {
			t.Error("Conteúdo filtrado por outro cargo não deveria ser visível.")
		}

		c.Positions = datatypes.NewJSONSlice([]string{"Analista"})
		if !c.IsVisibleTo(u) {
			t.Error("Conteúdo do cargo do usuário deveria ser visível.")
		}
	})
}

func TestResolveTrail(t *testing.T) {
	u := &user.User{ID: uuid.New(), Sector: "CS", Position: "Analista"}

	last := &content.Content{ID: uuid.New(), Title: "Sem ordem", Required: true}
	second := &content.Content{ID: uuid.New(), Title: "Segundo", Order: intPtr(2)}
	first := &content.Content{ID: uuid.New(), Title: "Primeiro", Order: intPtr(1), Required: true}
	hidden := &content.Content{ID: uuid.New(), Title: "Oculto", Sector: "Financeiro", Order: intPtr(0)}

	repo := &fakeContentRepo{contents: []*content.Content{last, second, first, hidden}}
	service := content.NewService(repo, nil)

	trail, err := service.ResolveTrail(context.Background(), u)
	if err != nil {
		t.Fatalf("ResolveTrail falhou: %v", err)
	}

	if len(trail.Items) != 3 {
		t.Fatalf("Esperava 3 itens visíveis, recebi %d", len(trail.Items))
	}
	if trail.Items[0].ID != first.ID || trail.Items[1].ID != second.ID || trail.Items[2].ID != last.ID {
		t.Error("Itens fora da ordem da trilha (sem ordem deveria ir para o fim).")
	}
	if trail.RequiredCount != 2 {
		t.Errorf("RequiredCount incorreto. Esperado: 2, Recebido: %d", trail.RequiredCount)
	}
}
