package core

import (
	"context"

	"factureme/entity"
)

func (c *Core) ListObjets(ctx context.Context, user *entity.User) ([]*entity.Objet, error) {
	return c.db.ListObjets(ctx, user.IdUser)
}

func (c *Core) CreateObjet(ctx context.Context, user *entity.User, objet *entity.Objet) error {
	objet.IdUser = user.IdUser
	return c.db.CreateObjet(ctx, objet)
}

func (c *Core) UpdateObjet(ctx context.Context, user *entity.User, objet *entity.Objet) error {
	objet.IdUser = user.IdUser
	return c.db.UpdateObjet(ctx, objet)
}

func (c *Core) ListTauxHoraires(ctx context.Context, user *entity.User) ([]*entity.TauxHoraire, error) {
	return c.db.ListTauxHoraires(ctx, user.IdUser)
}

func (c *Core) CreateTauxHoraire(ctx context.Context, user *entity.User, taux *entity.TauxHoraire) error {
	taux.IdUser = user.IdUser
	return c.db.CreateTauxHoraire(ctx, taux)
}

func (c *Core) UpdateTauxHoraire(ctx context.Context, user *entity.User, taux *entity.TauxHoraire) error {
	taux.IdUser = user.IdUser
	return c.db.UpdateTauxHoraire(ctx, taux)
}

func (c *Core) ListClients(ctx context.Context, user *entity.User) ([]*entity.Client, error) {
	return c.db.ListClients(ctx, user.IdUser)
}

func (c *Core) CreateClient(ctx context.Context, user *entity.User, client *entity.Client) error {
	client.IdUser = user.IdUser
	return c.db.CreateClient(ctx, client)
}

func (c *Core) ListBusinesses(ctx context.Context, user *entity.User) ([]*entity.Business, error) {
	return c.db.ListBusinesses(ctx, user.IdUser)
}

func (c *Core) CreateBusiness(ctx context.Context, user *entity.User, business *entity.Business) error {
	business.IdUser = user.IdUser
	return c.db.CreateBusiness(ctx, business)
}
