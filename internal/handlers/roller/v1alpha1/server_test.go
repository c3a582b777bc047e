package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/bt-ship-roller/internal/handlers/roller/v1alpha1"
	"github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller"
	rollermock "github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller/mock"
	"github.com/KirkDiggler/bt-ship-roller/internal/sampler"
)

func startServer(t *testing.T, svc roller.Service) v1alpha1.RollerServiceClient {
	t.Helper()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{RollerService: svc})
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	v1alpha1.RegisterRollerServiceServer(srv, handler)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return v1alpha1.NewRollerServiceClient(conn)
}

func TestRollerServiceOverBufconn(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := rollermock.NewMockService(ctrl)
	client := startServer(t, svc)
	ctx := context.Background()

	svc.EXPECT().
		RollJumpShips(gomock.Any(), &roller.RollJumpShipsInput{Count: 2}).
		Return(&roller.RollJumpShipsOutput{Results: []roller.Result{
			{RollID: "roll_1", Class: "Invader", Line: "Invader"},
			{RollID: "roll_2", Class: "Tramp", Line: "Tramp (minor bucket)"},
		}}, nil)

	resp, err := client.RollJumpShips(ctx, &v1alpha1.RollJumpShipsRequest{Count: 2})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Invader", resp.Results[0].Line)
	assert.Equal(t, "Tramp (minor bucket)", resp.Results[1].Line)

	svc.EXPECT().
		RollDropShips(gomock.Any(), gomock.Any()).
		Return(nil, sampler.ErrNoEligibleCandidates)

	_, err = client.RollDropShips(ctx, &v1alpha1.RollRequest{Count: 1})
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Contains(t, st.Message(), sampler.ReasonNoEligibleCandidates)
}
