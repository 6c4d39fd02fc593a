package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
)

//go:generate mockgen -source=entity.go -destination=mocks/entity_mock.go -package=mocks

type EntityRepository interface {
	CountByAccount(ctx context.Context, tier domain.EntityTier, accountID string) (int, error)
	ExternalIDMap(ctx context.Context, tier domain.EntityTier, accountID string) (map[string]string, error)
	TombstoneMissing(ctx context.Context, tier domain.EntityTier, accountID string, keepExternalIDs []string, at time.Time) (int64, error)
	DemoteOrphanedAdGroups(ctx context.Context, accountID string, now time.Time) (int64, error)
	DemoteOrphanedAds(ctx context.Context, accountID string) (int64, error)
	LinkCreatives(ctx context.Context, accountID string) (int64, error)
	ListAdsByStatus(ctx context.Context, accountID string, statuses []domain.EntityStatus) ([]*domain.Ad, error)
	ListAdsByExternalIDs(ctx context.Context, accountID string, externalIDs []string) ([]*domain.Ad, error)
}

type entityRepository struct {
	conn postgres.Queryer
}

func NewEntityRepository(conn postgres.Queryer) EntityRepository {
	return &entityRepository{
		conn: conn,
	}
}

func tierTable(tier domain.EntityTier) (string, error) {
	if _, ok := domain.ParseEntityTier(string(tier)); !ok {
		return "", fmt.Errorf("nível de entidade desconhecido: %s", tier)
	}
	return string(tier), nil
}

func (r *entityRepository) CountByAccount(ctx context.Context, tier domain.EntityTier, accountID string) (int, error) {
	table, err := tierTable(tier)
	if err != nil {
		return 0, err
	}

	query, args, err := squirrel.
		Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, wrapDBError(fmt.Sprintf("erro ao contar %s", table), err)
	}

	return count, nil
}

func (r *entityRepository) ExternalIDMap(ctx context.Context, tier domain.EntityTier, accountID string) (map[string]string, error) {
	table, err := tierTable(tier)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("external_id", "id").
		From(table).
		Where(squirrel.Eq{"account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(fmt.Sprintf("erro ao carregar mapa de %s", table), err)
	}
	defer rows.Close()

	ids := make(map[string]string)
	for rows.Next() {
		var externalID, id string
		if err := rows.Scan(&externalID, &id); err != nil {
			return nil, fmt.Errorf("erro ao escanear mapa de %s: %w", table, err)
		}
		ids[externalID] = id
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ids, nil
}

// TombstoneMissing marca como excluídas as entidades da conta que não vieram na passada completa.
// Criativos não têm exclusão lógica.
func (r *entityRepository) TombstoneMissing(ctx context.Context, tier domain.EntityTier, accountID string, keepExternalIDs []string, at time.Time) (int64, error) {
	table, err := tierTable(tier)
	if err != nil {
		return 0, err
	}
	if tier == domain.TierCreatives {
		return 0, nil
	}

	query, args, err := squirrel.
		Update(table).
		Set("status", squirrel.Expr("?::entity_status", domain.EntityStatusDeleted)).
		Set("effective_status", squirrel.Expr("?::entity_status", domain.EntityStatusDeleted)).
		Set("deleted_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"account_id": accountID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Where(squirrel.Expr("NOT (external_id = ANY(?))", pq.Array(keepExternalIDs))).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.exec(ctx, fmt.Sprintf("erro ao marcar exclusões em %s", table), query, args)
}

// DemoteOrphanedAdGroups pausa conjuntos ativos cuja campanha não está ativa ou já terminou.
// Campanha sem status efetivo conta como não ativa.
func (r *entityRepository) DemoteOrphanedAdGroups(ctx context.Context, accountID string, now time.Time) (int64, error) {
	query, args, err := squirrel.
		Update("ad_groups").
		Set("effective_status", squirrel.Expr("?::entity_status", domain.EntityStatusPaused)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"account_id": accountID, "effective_status": domain.EntityStatusActive}).
		Where(squirrel.Expr(
			"campaign_id IN (SELECT c.id FROM campaigns c WHERE c.account_id = ? AND (c.effective_status IS DISTINCT FROM ?::entity_status OR (c.end_time IS NOT NULL AND c.end_time < ?)))",
			accountID, domain.EntityStatusActive, now,
		)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.exec(ctx, "erro ao rebaixar conjuntos de anúncios", query, args)
}

// DemoteOrphanedAds pausa anúncios ativos cujo conjunto não está ativo
func (r *entityRepository) DemoteOrphanedAds(ctx context.Context, accountID string) (int64, error) {
	query, args, err := squirrel.
		Update("ads").
		Set("effective_status", squirrel.Expr("?::entity_status", domain.EntityStatusPaused)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"account_id": accountID, "effective_status": domain.EntityStatusActive}).
		Where(squirrel.Expr(
			"ad_group_id IN (SELECT g.id FROM ad_groups g WHERE g.account_id = ? AND g.effective_status IS DISTINCT FROM ?::entity_status)",
			accountID, domain.EntityStatusActive,
		)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.exec(ctx, "erro ao rebaixar anúncios", query, args)
}

// LinkCreatives liga anúncios sem criativo ao criativo de mesmo ID externo
func (r *entityRepository) LinkCreatives(ctx context.Context, accountID string) (int64, error) {
	query, args, err := squirrel.
		Update("ads").
		Set("creative_id", squirrel.Expr(
			"(SELECT cr.id FROM ad_creatives cr WHERE cr.account_id = ads.account_id AND cr.external_id = ads.creative_external_id)",
		)).
		Where(squirrel.Eq{"account_id": accountID, "creative_id": nil}).
		Where(squirrel.NotEq{"creative_external_id": nil}).
		Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM ad_creatives cr WHERE cr.account_id = ads.account_id AND cr.external_id = ads.creative_external_id)",
		)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.exec(ctx, "erro ao vincular criativos", query, args)
}

func (r *entityRepository) ListAdsByStatus(ctx context.Context, accountID string, statuses []domain.EntityStatus) ([]*domain.Ad, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	builder := adsSelect().
		Where(squirrel.Eq{"ad.account_id": accountID, "ad.deleted_at": nil}).
		Where(squirrel.Expr("ad.effective_status::text = ANY(?)", pq.Array(names)))

	return r.listAds(ctx, builder)
}

func (r *entityRepository) ListAdsByExternalIDs(ctx context.Context, accountID string, externalIDs []string) ([]*domain.Ad, error) {
	builder := adsSelect().
		Where(squirrel.Eq{"ad.account_id": accountID}).
		Where(squirrel.Expr("ad.external_id = ANY(?)", pq.Array(externalIDs)))

	return r.listAds(ctx, builder)
}

func adsSelect() squirrel.SelectBuilder {
	return squirrel.
		Select("ad.id, ad.account_id, ad.campaign_id, ad.ad_group_id, ad.external_id, ad.name, ad.effective_status, ad.deleted_at").
		From("ads ad").
		OrderBy("ad.external_id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *entityRepository) listAds(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.Ad, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("erro ao listar anúncios", err)
	}
	defer rows.Close()

	ads := make([]*domain.Ad, 0)
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ads, nil
}

// scanAd lê uma linha de adsSelect. Nome e status efetivo podem ser NULL.
func scanAd(row scanner) (*domain.Ad, error) {
	ad := &domain.Ad{}
	var name, effectiveStatus sql.NullString
	var deletedAt sql.NullTime
	if err := row.Scan(
		&ad.ID,
		&ad.AccountID,
		&ad.CampaignID,
		&ad.AdGroupID,
		&ad.ExternalID,
		&name,
		&effectiveStatus,
		&deletedAt,
	); err != nil {
		return nil, fmt.Errorf("erro ao escanear anúncio: %w", err)
	}

	ad.Name = name.String
	ad.EffectiveStatus = domain.EntityStatus(effectiveStatus.String)
	if deletedAt.Valid {
		ad.DeletedAt = &deletedAt.Time
	}
	return ad, nil
}

func (r *entityRepository) exec(ctx context.Context, msg, query string, args []any) (int64, error) {
	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapDBError(msg, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}
